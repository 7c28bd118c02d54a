/*

Types describing the init data (the initial lobby).

*/

package rep

import "github.com/stormprot/stormprot"

// InitData describes the init data (the initial lobby).
type InitData struct {
	stormprot.Struct

	GameDescription GameDescription `json:"-"` // Game description
	LobbyState      LobbyState      `json:"-"` // Lobby state
	UserInitDatas   []UserInitData  `json:"-"` // User init data structs
}

// newInitData creates a new init data from the specified Struct.
func newInitData(s stormprot.Struct) InitData {
	// Init data is a struct with 1 field only which is a struct. Use that as the root struct.
	i := InitData{Struct: s.Structv("m_syncLobbyState")}

	i.GameDescription = GameDescription{Struct: i.Structv("m_gameDescription")}
	i.LobbyState = LobbyState{Struct: i.Structv("m_lobbyState")}

	uids := i.Array("m_userInitialData")
	i.UserInitDatas = make([]UserInitData, len(uids))
	for j, uid := range uids {
		i.UserInitDatas[j] = UserInitData{Struct: uid.(stormprot.Struct)}
	}

	return i
}

// GameDescription is the game description.
type GameDescription struct {
	stormprot.Struct

	cacheHandles []*CacheHandle // Lazily initialized cache handles
}

// GameCacheName returns the game cache name.
func (g *GameDescription) GameCacheName() string {
	return g.Stringv("m_gameCacheName")
}

// RandomValue returns the random value.
func (g *GameDescription) RandomValue() int64 {
	return g.Int("m_randomValue")
}

// MaxUsers returns the max number of users.
func (g *GameDescription) MaxUsers() int64 {
	return g.Int("m_maxUsers")
}

// MaxObservers returns the max number of observers.
func (g *GameDescription) MaxObservers() int64 {
	return g.Int("m_maxObservers")
}

// IsBlizzardMap tells if the map is an official Blizzard map.
func (g *GameDescription) IsBlizzardMap() bool {
	return g.Bool("m_isBlizzardMap")
}

// IsPremadeFFA tells if the game is a pre-made free-for-all game.
func (g *GameDescription) IsPremadeFFA() bool {
	return g.Bool("m_isPremadeFFA")
}

// IsCoopMode tells if the game is a cooperative game.
func (g *GameDescription) IsCoopMode() bool {
	return g.Bool("m_isCoopMode")
}

// CacheHandles returns the array of cache handles.
func (g *GameDescription) CacheHandles() []*CacheHandle {
	if g.cacheHandles == nil {
		chs := g.Array("m_cacheHandles")
		g.cacheHandles = make([]*CacheHandle, len(chs))
		for i, ch := range chs {
			g.cacheHandles[i] = newCacheHandle(ch.(string))
		}
	}

	return g.cacheHandles
}

// LobbyState is the lobby state.
type LobbyState struct {
	stormprot.Struct
}

// Phase returns the lobby phase.
func (l *LobbyState) Phase() int64 {
	return l.Int("m_phase")
}

// MaxUsers returns the max number of users.
func (l *LobbyState) MaxUsers() int64 {
	return l.Int("m_maxUsers")
}

// MaxObservers returns the max number of observers.
func (l *LobbyState) MaxObservers() int64 {
	return l.Int("m_maxObservers")
}

// RandomSeed returns the random seed.
func (l *LobbyState) RandomSeed() int64 {
	return l.Int("m_randomSeed")
}

// HostUserID returns the user ID of the host, or -1 if there is no host.
func (l *LobbyState) HostUserID() int64 {
	if v, ok := l.Value("m_hostUserId").(int64); ok {
		return v
	}
	return -1
}

// IsSinglePlayer tells if the game is single player.
func (l *LobbyState) IsSinglePlayer() bool {
	return l.Bool("m_isSinglePlayer")
}

// GameDuration returns the game duration in loops.
func (l *LobbyState) GameDuration() int64 {
	return l.Int("m_gameDuration")
}

// UserInitData describes a user in the initial lobby.
type UserInitData struct {
	stormprot.Struct
}

// Name returns the name of the user.
func (u *UserInitData) Name() string {
	return u.Stringv("m_name")
}

// RandomSeed returns the random seed of the user.
func (u *UserInitData) RandomSeed() int64 {
	return u.Int("m_randomSeed")
}

// Observe returns the observe flag of the user.
func (u *UserInitData) Observe() int64 {
	return u.Int("m_observe")
}

// Hero returns the hero selected by the user.
func (u *UserInitData) Hero() string {
	return u.Stringv("m_hero")
}
