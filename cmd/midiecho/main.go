package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "list":
		listPorts()
	case "echo":
		name := ""
		if len(os.Args) > 2 {
			name = os.Args[2]
		}
		echo(name)
	default:
		usage()
	}
}

func usage() {
	fmt.Println("MIDI diagnostics")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list          - List MIDI input ports")
	fmt.Println("  echo [port]   - Print incoming messages until interrupted")
}

func listPorts() {
	ins := gomidi.GetInPorts()
	if len(ins) == 0 {
		fmt.Println("No MIDI input ports")
		return
	}
	for i, p := range ins {
		fmt.Printf("  %d: %s\n", i, p.String())
	}
}

func echo(name string) {
	ins := gomidi.GetInPorts()
	if len(ins) == 0 {
		fmt.Println("No MIDI input ports")
		return
	}

	var in drivers.In
	if name == "" {
		in = ins[0]
	} else {
		for _, p := range ins {
			if strings.Contains(strings.ToLower(p.String()), strings.ToLower(name)) {
				in = p
				break
			}
		}
	}
	if in == nil {
		fmt.Printf("Input %q not found\n", name)
		return
	}

	if err := in.Open(); err != nil {
		fmt.Printf("Open %s: %v\n", in.String(), err)
		return
	}
	defer in.Close()

	stop, err := gomidi.ListenTo(in, func(msg gomidi.Message, _ int32) {
		var ch, note, vel, cc, val uint8
		switch {
		case msg.GetNoteStart(&ch, &note, &vel):
			fmt.Printf("note_on  note=%d vel=%d\n", note, vel)
		case msg.GetNoteEnd(&ch, &note):
			fmt.Printf("note_off note=%d\n", note)
		case msg.GetControlChange(&ch, &cc, &val):
			fmt.Printf("cc       ctrl=%d val=%d\n", cc, val)
		}
	})
	if err != nil {
		fmt.Printf("Listen: %v\n", err)
		return
	}
	defer stop()

	fmt.Printf("Echoing %s, Ctrl+C to exit\n", in.String())
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
}
