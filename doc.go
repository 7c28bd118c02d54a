/*

Package stormprot is a decoder/parser of Blizzard's Heroes of the Storm replay file format (*.StormReplay).

stormprot processes the "raw" data that can be decoded from replay files using an MPQ parser
such as https://github.com/icza/mpq.

The package is safe for concurrent use.

# High-level Usage

The package stormprot/rep provides types to model the data structures of Heroes of the Storm
replays (*.StormReplay) decoded by the stormprot package. These provide a higher level overview
and are much easier to use.

To open and parse a replay:

	import "github.com/stormprot/stormprot/rep"

	r, err := rep.NewFromFile("Awesome Replay.StormReplay")
	if err != nil {
		fmt.Printf("%v\n", err)
		return
	}
	defer r.Close()

And that's all! We now have all the info from the replay! Printing some of it:

	fmt.Printf("Version:        %v\n", r.Header.VersionString())
	fmt.Printf("Loops:          %d\n", r.Header.Loops())
	fmt.Printf("Length:         %v\n", r.Header.Duration())
	fmt.Printf("Map:            %s\n", r.Details.Title())
	fmt.Printf("Game events:    %d\n", len(r.GameEvts))
	fmt.Printf("Message events: %d\n", len(r.MessageEvts))
	fmt.Printf("Tracker events: %d\n", len(r.TrackerEvts.Evts))

	fmt.Println("Players:")
	for _, p := range r.Details.Players() {
		fmt.Printf("\tName: %-20s, Hero: %s, Team: %d\n", p.Name, p.Hero(), p.TeamID()+1)
	}

Tip: the Struct type defines a String() method which returns a nicely formatted JSON representation;
this is what most types are "made of":

	fmt.Printf("Full Header:\n%v\n", r.Header)

# Low-level Usage

The stormprot package itself decodes the raw inner files of a replay. Inner file
contents must be acquired with an MPQ parser, e.g.:

	m, err := mpq.NewFromFile("Awesome Replay.StormReplay")
	if err != nil {
		return err
	}
	defer m.Close()

	header, err := stormprot.DecodeHeader(m.UserData())
	if err != nil {
		return err
	}

	p := stormprot.GetProtocol(int(header.Int("m_version", "m_baseBuild")))
	if p == nil {
		return fmt.Errorf("unsupported replay version")
	}

	data, err := m.FileByName("replay.game.events")
	if err != nil {
		return err
	}

	seq := p.GameEvtSeq(data)
	for seq.Next() {
		fmt.Println(seq.Event())
	}
	if err := seq.Err(); err != nil {
		return err
	}

Event sequences are lazy and single-pass: an EvtSeq owns its buffer cursor for
its entire lifetime, and a partially consumed sequence must not be resumed by
other decodes over the same buffer.

# Information sources

Blizzard's heroprotocol project:

https://github.com/Blizzard/heroprotocol

The s2protocol project (the StarCraft II counterpart this format descends from):

https://github.com/Blizzard/s2protocol

*/
package stormprot
