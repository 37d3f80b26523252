// Command journalctl creates, inspects and repairs journal file headers.
package main

func main() {
	execute()
}
