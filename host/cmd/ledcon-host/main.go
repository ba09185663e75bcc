package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/shlex"

	"ledcon/host/link"
	"ledcon/host/serial"
)

var (
	device  = flag.String("device", "/dev/ttyACM0", "Serial device path")
	baud    = flag.Int("baud", 115200, "Baud rate (ignored for USB CDC)")
	timeout = flag.Duration("timeout", time.Second, "Ping timeout")
)

func main() {
	flag.Parse()

	fmt.Println("ledcon-host - LED Controller Console")
	fmt.Println("====================================")

	cfg := serial.DefaultConfig(*device)
	cfg.Baud = *baud

	fmt.Printf("Connecting to controller on %s...\n", *device)
	port, err := serial.Open(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open port: %v\n", err)
		os.Exit(1)
	}
	defer port.Close()

	l := link.New(port)
	if err := l.Ping(*timeout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: controller not responding: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Connected successfully!")

	fmt.Println("Enter commands (type 'help' for available commands, 'quit' to exit):")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		args, err := shlex.Split(line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		if len(args) == 0 {
			continue
		}

		switch args[0] {
		case "quit", "exit", "q":
			fmt.Println("Goodbye!")
			return

		case "help", "?":
			printHelp()

		case "ping":
			if err := l.Ping(*timeout); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			} else {
				fmt.Println("ack")
			}

		case "set":
			if err := cmdSet(l, args[1:]); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}

		case "fill":
			if err := cmdFill(l, args[1:]); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}

		case "bright":
			if err := cmdBright(l, args[1:]); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}

		case "show":
			if err := l.Show(); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}

		case "off":
			if err := cmdOff(l); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}

		default:
			fmt.Printf("Unknown command: %s (type 'help' for available commands)\n", args[0])
		}
	}

	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}
}

func cmdSet(l *link.Link, args []string) error {
	if len(args) != 4 {
		return fmt.Errorf("usage: set <index> <r> <g> <b>")
	}
	vals, err := parseBytes(args)
	if err != nil {
		return err
	}
	return l.SetPixel(vals[0], vals[1], vals[2], vals[3])
}

func cmdFill(l *link.Link, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: fill <r> <g> <b>")
	}
	vals, err := parseBytes(args)
	if err != nil {
		return err
	}
	return l.Fill(vals[0], vals[1], vals[2])
}

func cmdBright(l *link.Link, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: bright <level>")
	}
	vals, err := parseBytes(args)
	if err != nil {
		return err
	}
	return l.SetBrightness(vals[0])
}

func cmdOff(l *link.Link) error {
	if err := l.Fill(0, 0, 0); err != nil {
		return err
	}
	return l.Show()
}

func parseBytes(args []string) ([]uint8, error) {
	out := make([]uint8, len(args))
	for i, a := range args {
		v, err := strconv.ParseUint(a, 0, 8)
		if err != nil {
			return nil, fmt.Errorf("bad value %q: %w", a, err)
		}
		out[i] = uint8(v)
	}
	return out, nil
}

func printHelp() {
	fmt.Println("\nAvailable commands:")
	fmt.Println("  help               - Show this help message")
	fmt.Println("  ping               - Check the controller is alive")
	fmt.Println("  set <i> <r> <g> <b> - Set one LED (values 0-255, hex with 0x)")
	fmt.Println("  fill <r> <g> <b>   - Set every LED")
	fmt.Println("  bright <level>     - Set global brightness (0-255)")
	fmt.Println("  show               - Refresh the strip")
	fmt.Println("  off                - Blank the strip")
	fmt.Println("  quit/exit/q        - Exit the program")
	fmt.Println()
}
