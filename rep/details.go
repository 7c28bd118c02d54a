/*

Types describing the game details (overall replay details).

*/

package rep

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/stormprot/stormprot"
)

// Details describes the game details (overall replay details).
type Details struct {
	stormprot.Struct

	players      []Player       // Lazily initialized players
	cacheHandles []*CacheHandle // Lazily initialized cache handles
}

// Title returns the map name.
func (d *Details) Title() string {
	return d.Stringv("m_title")
}

// IsBlizzardMap tells if the map is an official Blizzard map.
func (d *Details) IsBlizzardMap() bool {
	return d.Bool("m_isBlizzardMap")
}

// GameSpeed returns the game speed.
func (d *Details) GameSpeed() int64 {
	return d.Int("m_gameSpeed")
}

// ThumbnailFile returns the map thumbnail file name.
func (d *Details) ThumbnailFile() string {
	return d.Stringv("m_thumbnail", "m_file")
}

// Time returns the replay date+time.
func (d *Details) Time() time.Time {
	// m_timeUTC is in 100-nanosecond units since the Windows epoch (Jan 1, 1601)
	return time.Unix(0, (d.Int("m_timeUTC")-116444736000000000)*100)
}

// TimeLocalOffset returns the local time offset of the player who saved the replay.
func (d *Details) TimeLocalOffset() time.Duration {
	// m_timeLocalOffset is in 100-nanosecond units
	return time.Duration(d.Int("m_timeLocalOffset") * 100)
}

// CacheHandles returns the array of cache handles.
func (d *Details) CacheHandles() []*CacheHandle {
	if d.cacheHandles == nil {
		chs := d.Array("m_cacheHandles")
		d.cacheHandles = make([]*CacheHandle, len(chs))
		for i, ch := range chs {
			d.cacheHandles[i] = newCacheHandle(ch.(string))
		}
	}

	return d.cacheHandles
}

// DefaultDifficulty returns the default difficulty.
func (d *Details) DefaultDifficulty() int64 {
	return d.Int("m_defaultDifficulty")
}

// Difficulty returns the difficulty.
func (d *Details) Difficulty() string {
	return d.Stringv("m_difficulty")
}

// Description returns the description.
func (d *Details) Description() string {
	return d.Stringv("m_description")
}

// ImageFilePath returns the image file path.
func (d *Details) ImageFilePath() string {
	return d.Stringv("m_imageFilePath")
}

// MapFileName returns the name of the map file.
func (d *Details) MapFileName() string {
	return d.Stringv("m_mapFileName")
}

// MiniSave returns if mini save.
func (d *Details) MiniSave() bool {
	return d.Bool("m_miniSave")
}

// RestartAsTransitionMap returns if restart as transition map.
func (d *Details) RestartAsTransitionMap() bool {
	return d.Bool("m_restartAsTransitionMap")
}

// Players returns the list of players.
func (d *Details) Players() []Player {
	if d.players == nil {
		players := d.Array("m_playerList")
		d.players = make([]Player, len(players))
		for i, pl := range players {
			p := Player{Struct: pl.(stormprot.Struct)}
			p.Name = p.Stringv("m_name")
			p.Toon = Toon{Struct: p.Structv("m_toon")}
			c := p.Structv("m_color")
			p.Color = [4]byte{byte(c.Int("m_a")), byte(c.Int("m_r")), byte(c.Int("m_g")), byte(c.Int("m_b"))}
			d.players[i] = p
		}
	}

	return d.players
}

// Player (participant of the game). Includes computer players but excludes observers.
type Player struct {
	stormprot.Struct

	Name  string  // Name of the player
	Toon  Toon    // Toon of the player. This is a unique identifier.
	Color [4]byte // Color of the player, ARGB components. A=255 means completely opaque, A=0 means completely transparent.
}

// Hero returns the name of the hero the player played.
func (p *Player) Hero() string {
	return p.Stringv("m_hero")
}

// RaceString returns the localized race string.
// Heroes of the Storm fills this with an empty value; kept for wire parity.
func (p *Player) RaceString() string {
	return p.Stringv("m_race")
}

// TeamID returns the team ID.
func (p *Player) TeamID() int64 {
	return p.Int("m_teamId")
}

// Result returns the game result (1 means victory, 2 means defeat).
func (p *Player) Result() int64 {
	return p.Int("m_result")
}

// Handicap returns the handicap.
func (p *Player) Handicap() int64 {
	return p.Int("m_handicap")
}

// WorkingSetSlotID returns the working set slot ID.
func (p *Player) WorkingSetSlotID() int64 {
	return p.Int("m_workingSetSlotId")
}

// Control returns the control.
func (p *Player) Control() int64 {
	return p.Int("m_control")
}

// Observe returns the observe flag.
func (p *Player) Observe() int64 {
	return p.Int("m_observe")
}

// Toon - a unique identifier (of a player)
type Toon struct {
	stormprot.Struct
}

// ID returns the ID.
func (t *Toon) ID() int64 {
	return t.Int("m_id")
}

// ProgramID returns the program ID, leading zeros stripped.
func (t *Toon) ProgramID() string {
	s := t.Stringv("m_programId")
	for i := 0; i < len(s); i++ {
		if s[i] != 0 {
			return s[i:]
		}
	}
	return s
}

// RealmID returns the realm ID.
func (t *Toon) RealmID() int64 {
	return t.Int("m_realm")
}

// RegionID returns the region ID.
func (t *Toon) RegionID() int64 {
	return t.Int("m_region")
}

// String returns a string representation of the Toon in the form of:
//
//	regionId-programId-realmId-playerId
//
// Using value receiver as Player.Toon is not a pointer (and so printing Player.Toon will call this method).
func (t Toon) String() string {
	return fmt.Sprintf("%d-%s-%d-%d", t.RegionID(), t.ProgramID(), t.RealmID(), t.ID())
}

// CacheHandle is a descriptor of a remote dependency resource: a 40-byte blob
// composed of a resource type, a region code and the content digest.
type CacheHandle struct {
	// Type of the resource, e.g. "s2ma"
	Type string

	// Region code of the resource, e.g. "EU"
	Region string

	// Digest is the hex form of the content digest of the resource
	Digest string
}

// newCacheHandle creates a new cache handle from its wire form.
func newCacheHandle(s string) *CacheHandle {
	if len(s) < 8 {
		return &CacheHandle{}
	}

	region := s[4:8]
	// Region is right-padded with zero bytes
	for i := 0; i < len(region); i++ {
		if region[i] == 0 {
			region = region[:i]
			break
		}
	}

	return &CacheHandle{
		Type:   s[:4],
		Region: region,
		Digest: hex.EncodeToString([]byte(s[8:])),
	}
}

// FileName returns the file name a cache handle refers to under the game's cache folder.
func (c *CacheHandle) FileName() string {
	return c.Digest + "." + c.Type
}
