// Package journal implements the header region of a journal file.
//
// The header holds the journal geometry and two alternating state slots.
// Each slot carries a self-verifying committed transaction id; storing that
// id is the single point at which a transaction becomes visible. Recovery
// selects the slot with the highest id that still verifies, so a crash in
// the middle of an update leaves the previous commit in effect.
//
// A Header does not own its bytes. Callers attach a mapped image, usually
// the first HeaderSize bytes of a File, and keep it alive while attached.
//
// Typical write path:
//
//	f, _ := journal.Create(path, journal.DefaultGeometry().HeaderSize)
//	h := journal.NewHeader(journal.WithLogger(log))
//	_ = h.Attach(f.Bytes())
//	h.Init(journal.DefaultGeometry(), journal.DefaultParameters())
//	h.CommitCurrentTransaction()
//	_ = f.Sync()
//
// Typical open path:
//
//	f, _ := journal.Open(path)
//	h := journal.NewHeader()
//	_ = h.Attach(f.Bytes())
//	if err := h.RecoverTransaction(false); err != nil {
//		// the header needs repair
//	}
//
// Header, StateSlot and the list types are not safe for concurrent use.
package journal
