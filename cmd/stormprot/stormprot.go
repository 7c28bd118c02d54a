/*

Package main is a simple CLI app to parse and display information about
a Heroes of the Storm replay passed as a CLI argument.

*/
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"runtime"
	"sort"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/stormprot/stormprot"
	"github.com/stormprot/stormprot/rep"
)

const (
	appName    = "stormprot"
	appVersion = "v1.0.0"
	appHome    = "https://github.com/stormprot/stormprot"
)

const (
	ExitCodeMissingArguments    = 1
	ExitCodeFailedToParseReplay = 2
	ExitCodeDecodingError       = 3
)

// Flag variables
var (
	version = flag.Bool("version", false, "print version info and exit")

	header      = flag.Bool("header", false, "print replay header")
	details     = flag.Bool("details", false, "print replay details")
	initData    = flag.Bool("initdata", false, "print replay init data")
	gameEvts    = flag.Bool("gameevents", false, "print game events")
	msgEvts     = flag.Bool("messageevents", false, "print message events")
	trackerEvts = flag.Bool("trackerevents", false, "print tracker events")
	attrEvts    = flag.Bool("attributeevents", false, "print attributes events")
	stats       = flag.Bool("stats", false, "print event stats")
	jsonOut     = flag.Bool("json", false, "print output in (compact) JSON format")
)

func main() {
	flag.Parse()

	if *version {
		printVersion()
		return
	}

	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(ExitCodeMissingArguments)
	}

	needGame := *gameEvts || *stats
	needMsg := *msgEvts || *stats
	needTracker := *trackerEvts || *stats

	r, err := rep.NewFromFileEvts(args[0], needGame, needMsg, needTracker)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to parse replay: %v\n", err)
		os.Exit(ExitCodeFailedToParseReplay)
	}
	defer r.Close()

	logger := newEvtLogger()

	if *header {
		printValue(r.Header.Struct)
	}

	if *details {
		printValue(r.Details.Struct)
	}

	if *initData {
		printValue(r.InitData.Value("m_gameDescription", "m_cacheHandles"))
		printValue(r.InitData.Struct)
	}

	if needGame {
		for i := range r.GameEvts {
			logger.log(&r.GameEvts[i], *gameEvts)
		}
	}

	if needMsg {
		for i := range r.MessageEvts {
			logger.log(&r.MessageEvts[i], *msgEvts)
		}
	}

	if needTracker {
		for i := range r.TrackerEvts.Evts {
			logger.log(&r.TrackerEvts.Evts[i], *trackerEvts)
		}
	}

	if *attrEvts {
		printValue(r.AttrEvts.Struct)
	}

	if *stats {
		logger.logStats(os.Stderr)
	}

	exitCode := 0
	for name, evtErr := range map[string]error{
		"game events":    r.GameEvtsErr,
		"message events": r.MessageEvtsErr,
		"tracker events": r.TrackerEvtsErr,
	} {
		if evtErr != nil {
			fmt.Fprintf(os.Stderr, "Failed to decode %s: %v\n", name, evtErr)
			exitCode = ExitCodeDecodingError
		}
	}
	os.Exit(exitCode)
}

// printValue prints a decoded value to the standard output,
// as compact JSON if the json flag is set, indented otherwise.
func printValue(v interface{}) {
	if *jsonOut {
		// Re-encode non-UTF-8 blob strings so they survive JSON encoding
		// (the same treatment the original python tool applied via ISO-8859-1).
		data, err := json.Marshal(sanitize(v))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to encode output: %v\n", err)
			os.Exit(ExitCodeDecodingError)
		}
		fmt.Println(string(data))
		return
	}

	data, err := json.MarshalIndent(sanitize(v), "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to encode output: %v\n", err)
		os.Exit(ExitCodeDecodingError)
	}
	fmt.Println(string(data))
}

// sanitize returns a copy of the decoded value tree in which strings that are
// not valid UTF-8 are re-encoded with the ISO-8859-1 mapping (each byte
// becomes the code point of the same value).
func sanitize(v interface{}) interface{} {
	switch x := v.(type) {
	case stormprot.Struct:
		s := stormprot.NewStruct()
		for _, k := range x.Keys() {
			s.Put(k, sanitize(x.Get(k)))
		}
		return s
	case []interface{}:
		out := make([]interface{}, len(x))
		for i := range x {
			out[i] = sanitize(x[i])
		}
		return out
	case string:
		if utf8.ValidString(x) {
			return x
		}
		if d, err := charmap.ISO8859_1.NewDecoder().String(x); err == nil {
			return d
		}
		return x
	default:
		return v
	}
}

// evtStat aggregates per-event-name counters.
type evtStat struct {
	name  string
	count int
	bits  int64
}

// evtLogger prints events and aggregates event stats.
type evtLogger struct {
	stats map[string]*evtStat
}

func newEvtLogger() *evtLogger {
	return &evtLogger{stats: make(map[string]*evtStat)}
}

// log updates the stats with the event, and also prints it if print is set.
func (l *evtLogger) log(e *stormprot.Event, print bool) {
	s := l.stats[e.Name]
	if s == nil {
		s = &evtStat{name: e.Name}
		l.stats[e.Name] = s
	}
	s.count++
	s.bits += e.Bits()

	if print {
		printValue(e.Struct)
	}
}

// logStats prints the aggregated event stats, sorted by total wire footprint.
func (l *evtLogger) logStats(out *os.File) {
	ss := make([]*evtStat, 0, len(l.stats))
	for _, s := range l.stats {
		ss = append(ss, s)
	}
	sort.Slice(ss, func(i, j int) bool { return ss[i].bits < ss[j].bits })

	for _, s := range ss {
		fmt.Fprintf(out, "\"%s\", %d, %d,\n", s.name, s.count, s.bits/8)
	}
}

func printVersion() {
	fmt.Println(appName, "version:", appVersion)
	fmt.Println("Supported replay builds:", stormprot.MinBaseBuild, "..", stormprot.MaxBaseBuild)
	fmt.Println("Platform:", runtime.GOOS, runtime.GOARCH)
	fmt.Println("Built with:", runtime.Version())
	fmt.Println("Home page:", appHome)
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Printf("\t%s [FLAGS] repfile.StormReplay\n", os.Args[0])
	fmt.Println("\tRun with '-h' to see a list of available flags.")
}
