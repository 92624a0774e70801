package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// fix is one decoded GPS position. Elevation is only present when a GGA
// sentence has been seen since the last fix.
type fix struct {
	When time.Time
	Lat  float64
	Lon  float64
	Ele  *float64
}

// parser decodes the two NMEA sentences the capture needs: RMC for
// timestamped positions and GGA for altitude. Everything else is ignored.
type parser struct {
	lastAlt  *float64
	altFresh bool
}

// Feed consumes one NMEA line. It returns a fix when the line was a valid
// RMC sentence with an active status, and ok=false otherwise.
func (p *parser) Feed(line string) (fix, bool) {
	fields, err := checkSentence(line)
	if err != nil {
		return fix{}, false
	}

	switch {
	case strings.HasSuffix(fields[0], "GGA"):
		p.feedGGA(fields)
		return fix{}, false
	case strings.HasSuffix(fields[0], "RMC"):
		return p.feedRMC(fields)
	}
	return fix{}, false
}

func (p *parser) feedGGA(fields []string) {
	// talker, time, lat, N/S, lon, E/W, quality, sats, hdop, altitude, unit
	if len(fields) < 11 || fields[6] == "0" || fields[9] == "" {
		return
	}
	alt, err := strconv.ParseFloat(fields[9], 64)
	if err != nil {
		return
	}
	p.lastAlt = &alt
	p.altFresh = true
}

func (p *parser) feedRMC(fields []string) (fix, bool) {
	// talker, time, status, lat, N/S, lon, E/W, speed, course, date
	if len(fields) < 10 || fields[2] != "A" {
		return fix{}, false
	}

	when, err := parseTimestamp(fields[9], fields[1])
	if err != nil {
		return fix{}, false
	}
	lat, err := parseCoordinate(fields[3], fields[4])
	if err != nil {
		return fix{}, false
	}
	lon, err := parseCoordinate(fields[5], fields[6])
	if err != nil {
		return fix{}, false
	}

	f := fix{When: when, Lat: lat, Lon: lon}
	if p.altFresh {
		f.Ele = p.lastAlt
		p.altFresh = false
	}
	return f, true
}

// checkSentence validates framing and checksum and returns the
// comma-separated fields without the leading "$".
func checkSentence(line string) ([]string, error) {
	line = strings.TrimSpace(line)
	if len(line) < 4 || line[0] != '$' {
		return nil, fmt.Errorf("not an NMEA sentence")
	}

	star := strings.LastIndexByte(line, '*')
	if star < 0 || star+3 != len(line) {
		return nil, fmt.Errorf("missing checksum")
	}

	body := line[1:star]
	want, err := strconv.ParseUint(line[star+1:], 16, 8)
	if err != nil {
		return nil, fmt.Errorf("bad checksum field: %w", err)
	}
	var sum byte
	for i := 0; i < len(body); i++ {
		sum ^= body[i]
	}
	if sum != byte(want) {
		return nil, fmt.Errorf("checksum mismatch: %02X != %02X", sum, want)
	}

	return strings.Split(body, ","), nil
}

// parseCoordinate converts NMEA ddmm.mmmm (or dddmm.mmmm) plus hemisphere
// into signed decimal degrees.
func parseCoordinate(value, hemi string) (float64, error) {
	if value == "" || hemi == "" {
		return 0, fmt.Errorf("empty coordinate")
	}
	dot := strings.IndexByte(value, '.')
	if dot < 3 {
		return 0, fmt.Errorf("malformed coordinate %q", value)
	}

	deg, err := strconv.ParseFloat(value[:dot-2], 64)
	if err != nil {
		return 0, err
	}
	min, err := strconv.ParseFloat(value[dot-2:], 64)
	if err != nil {
		return 0, err
	}

	out := deg + min/60.0
	switch hemi {
	case "S", "W":
		out = -out
	case "N", "E":
	default:
		return 0, fmt.Errorf("unknown hemisphere %q", hemi)
	}
	return out, nil
}

// parseTimestamp combines the RMC date (ddmmyy) and time (hhmmss.sss) fields
// into a UTC timestamp.
func parseTimestamp(date, clock string) (time.Time, error) {
	if len(date) != 6 || len(clock) < 6 {
		return time.Time{}, fmt.Errorf("malformed date/time %q %q", date, clock)
	}

	day, err1 := strconv.Atoi(date[0:2])
	month, err2 := strconv.Atoi(date[2:4])
	year, err3 := strconv.Atoi(date[4:6])
	hour, err4 := strconv.Atoi(clock[0:2])
	minute, err5 := strconv.Atoi(clock[2:4])
	sec, err6 := strconv.ParseFloat(clock[4:], 64)
	for _, err := range []error{err1, err2, err3, err4, err5, err6} {
		if err != nil {
			return time.Time{}, err
		}
	}

	nanos := int64(sec * float64(time.Second))
	return time.Date(2000+year, time.Month(month), day, hour, minute, 0, 0, time.UTC).
		Add(time.Duration(nanos)), nil
}
