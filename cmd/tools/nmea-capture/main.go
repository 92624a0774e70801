// Command nmea-capture records a GPS track from a serial NMEA receiver and
// writes it as a GPX file, giving new sessions their raw recordings. Capture
// runs until interrupted.
package main

import (
	"bufio"
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"go.bug.st/serial"

	"github.com/banshee-data/tracks.report/internal/geo"
	"github.com/banshee-data/tracks.report/internal/gpx"
)

var (
	portName = flag.String("port", "/dev/ttyUSB0", "Serial port of the GPS receiver")
	baudRate = flag.Int("baud", 9600, "Serial baud rate")
	outFile  = flag.String("out", "recording.gpx", "Output GPX file")
	trkName  = flag.String("name", "capture", "Track name in the GPX output")
)

func main() {
	flag.Parse()

	mode := &serial.Mode{
		BaudRate: *baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(*portName, mode)
	if err != nil {
		log.Fatalf("Failed to open %s: %v", *portName, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	lines := make(chan string)
	go func() {
		defer close(lines)
		scan := bufio.NewScanner(port)
		for scan.Scan() {
			select {
			case lines <- scan.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := scan.Err(); err != nil {
			log.Printf("serial read stopped: %v", err)
		}
	}()

	// Closing the port on interrupt unblocks the scanner goroutine.
	go func() {
		<-ctx.Done()
		port.Close()
	}()

	var (
		p      parser
		points []geo.GeoPoint
	)
	log.Printf("Capturing from %s at %d baud; interrupt to finish", *portName, *baudRate)
	for line := range lines {
		f, ok := p.Feed(line)
		if !ok {
			continue
		}
		when := f.When
		points = append(points, geo.GeoPoint{Lat: f.Lat, Lon: f.Lon, Ele: f.Ele, Time: &when})
		if len(points)%60 == 0 {
			log.Printf("%d fixes captured, last at %s", len(points), when.Format("15:04:05"))
		}
	}

	if len(points) == 0 {
		log.Fatal("No fixes captured; nothing written")
	}
	if err := gpx.WritePoints(*outFile, *trkName, points); err != nil {
		log.Fatalf("Failed to write %s: %v", *outFile, err)
	}
	log.Printf("✓ %d fixes written to %s", len(points), *outFile)
}
