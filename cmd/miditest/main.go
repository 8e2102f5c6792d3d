package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"go-leapchord/gesture"
	"go-leapchord/midi"
	"go-leapchord/source"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	fs := flag.NewFlagSet(os.Args[1], flag.ExitOnError)
	port := fs.String("port", "", "MIDI output port (substring match, empty = first real port)")
	channel := fs.Int("channel", 2, "MIDI channel 1-16")
	program := fs.Int("program", 0, "program number 0-127")
	fs.Parse(os.Args[2:])

	ch := midi.Channel(*channel)
	if !ch.Valid() || *program < 0 || *program > 127 {
		fmt.Println("channel must be 1-16 and program 0-127")
		os.Exit(1)
	}
	defer midi.CloseDriver()

	var err error
	switch os.Args[1] {
	case "list":
		err = listPorts()
	case "chord":
		err = playChord(*port, ch, uint8(*program))
	case "panic":
		err = panicOut(*port, ch, uint8(*program))
	default:
		usage()
		return
	}
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("MIDI Test Scripts")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list    - List MIDI outputs and serial ports")
	fmt.Println("  chord   - Play one chord from the default scale")
	fmt.Println("  panic   - Silence every note and reset the program")
	fmt.Println("")
	fmt.Println("Flags: -port NAME  -channel N  -program N")
}

func listPorts() error {
	fmt.Println("=== MIDI Output Ports ===")
	fmt.Println("(waiting up to 3 seconds...)")

	outs, err := midi.OutPorts()
	if err != nil {
		fmt.Println("Fix on macOS: sudo killall coreaudiod midiserver")
		return err
	}
	for i, p := range outs {
		fmt.Printf("  %d: %s\n", i, p.String())
	}
	if def, err := midi.PickOut(outs, ""); err == nil {
		fmt.Printf("  default: %s\n", def.String())
	}

	fmt.Println("\n=== Serial Ports ===")
	ports, err := source.SerialPorts()
	if err != nil {
		return err
	}
	for i, p := range ports {
		fmt.Printf("  %d: %s\n", i, p)
	}
	return nil
}

func playChord(port string, ch midi.Channel, program uint8) error {
	out, err := midi.OpenOut(port)
	if err != nil {
		return err
	}
	defer out.Close()

	scale, err := gesture.BuildScale(42, gesture.MinorIntervals, 3)
	if err != nil {
		return err
	}
	chord := gesture.BuildChord(7, scale)

	opts := gesture.DefaultOptions()
	sched := gesture.NewScheduler(out, ch, opts.MinDuration, opts.MaxDuration)
	sched.Emit(ch.InstrumentChange(program)...)

	const velocity = 100
	ev := sched.NoteOn(chord, velocity, program, opts.Envelope, time.Now())
	fmt.Printf("Playing %v on %s ch%d prog %d for %s\n",
		midi.PitchNames(chord), out.Name(), ch, program, ev.ExpiresAt.Sub(ev.IssuedAt))

	time.Sleep(ev.ExpiresAt.Sub(ev.IssuedAt))
	sched.ReleaseAll()

	if n := sched.SendErrors(); n > 0 {
		return fmt.Errorf("%d messages failed to send", n)
	}
	fmt.Println("Done!")
	return nil
}

func panicOut(port string, ch midi.Channel, program uint8) error {
	out, err := midi.OpenOut(port)
	if err != nil {
		return err
	}
	defer out.Close()

	for _, msg := range ch.InstrumentChange(program) {
		if err := out.Send(msg); err != nil {
			return err
		}
	}
	fmt.Printf("Sent all-notes-off and program %d to %s ch%d\n", program, out.Name(), ch)
	return nil
}
