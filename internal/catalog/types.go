package catalog

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
)

// Ref is a named reference entity (country, league, club or position).
type Ref struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Player is a catalog player as seen by the games.
type Player struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Country     Ref    `json:"country"`
	League      Ref    `json:"league"`
	Club        Ref    `json:"club"`
	Position    Ref    `json:"position"`
	Age         int    `json:"age"`
	ShirtNumber int    `json:"shirt_number"`
}

// Transfer is one historical move of a player between clubs.
type Transfer struct {
	ID       int64           `json:"id"`
	Player   Player          `json:"player"`
	FromClub Ref             `json:"from_club"`
	ToClub   Ref             `json:"to_club"`
	Amount   decimal.Decimal `json:"amount"`
	Date     time.Time       `json:"date"`
}

// PlayerInput describes a player by the names of its references.
type PlayerInput struct {
	Name        string `msgpack:"name"`
	Country     string `msgpack:"country"`
	League      string `msgpack:"league"`
	Club        string `msgpack:"club"`
	Position    string `msgpack:"position"`
	Age         int    `msgpack:"age"`
	ShirtNumber int    `msgpack:"shirt_number"`
}

// TransferInput describes a transfer by player and club names.
// Amount is a decimal literal and Date is YYYY-MM-DD.
type TransferInput struct {
	PlayerName string `msgpack:"player_name"`
	FromClub   string `msgpack:"from_club"`
	ToClub     string `msgpack:"to_club"`
	Amount     string `msgpack:"amount"`
	Date       string `msgpack:"date"`
}

// Snapshot is a portable copy of the whole catalog.
type Snapshot struct {
	Version   int             `msgpack:"version"`
	Players   []PlayerInput   `msgpack:"players"`
	Transfers []TransferInput `msgpack:"transfers"`
}

// NameKey normalises a player name for case-insensitive lookups: surrounding
// and repeated whitespace is collapsed and the result is Unicode case-folded.
func NameKey(name string) string {
	return cases.Fold().String(strings.Join(strings.Fields(name), " "))
}
