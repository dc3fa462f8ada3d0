package booking

import "time"

const (
	PlayerRate     = 120
	LaneRate       = 100
	PlayersPerLane = 4
	NumberPrefix   = "STR"
	FirstNumber    = 1000
)

type Booking struct {
	BookingNumber string     `json:"bookingNumber"`
	Date          string     `json:"date"`
	Time          string     `json:"time"`
	Players       []int      `json:"players"`
	Lanes         int        `json:"lanes"`
	ShoeSizes     []ShoeSize `json:"shoeSizes"`
	TotalPrice    int        `json:"totalPrice"`
	CreatedAt     time.Time  `json:"createdAt"`
}

type ShoeSize struct {
	Player int `json:"player"`
	Size   int `json:"size"`
}

// NewBooking is the body of a create request. Lanes is a pointer so that an
// absent field can be told apart from an explicit zero.
type NewBooking struct {
	Date      string     `json:"date"`
	Time      string     `json:"time"`
	Players   []int      `json:"players" binding:"required"`
	Lanes     *int       `json:"lanes" binding:"required,max=1000"`
	ShoeSizes []ShoeSize `json:"shoeSizes"`
}

type CostBreakdown struct {
	PlayerCost int `json:"playerCost"`
	LaneCost   int `json:"laneCost"`
	Total      int `json:"total"`
}

func (b Booking) Breakdown() CostBreakdown {
	return PriceBreakdown(len(b.Players), b.Lanes)
}

// PriceBreakdown does not guard against overflow; lane counts are bounded
// when a request is bound.
func PriceBreakdown(players, lanes int) CostBreakdown {
	playerCost := players * PlayerRate
	laneCost := lanes * LaneRate

	return CostBreakdown{
		PlayerCost: playerCost,
		LaneCost:   laneCost,
		Total:      playerCost + laneCost,
	}
}

func TotalPrice(players, lanes int) int {
	return PriceBreakdown(players, lanes).Total
}

// DeriveLaneCount is the client-side rule of one lane per four players, never
// less than one lane. The server does not apply it.
func DeriveLaneCount(playerCount int) int {
	lanes := (playerCount + PlayersPerLane - 1) / PlayersPerLane

	return max(1, lanes)
}

// Clone returns a copy that shares no slices with b. Nil slices become
// empty ones.
func (b Booking) Clone() Booking {
	b.Players = append([]int(nil), b.Players...)
	b.ShoeSizes = append([]ShoeSize(nil), b.ShoeSizes...)

	if b.Players == nil {
		b.Players = []int{}
	}

	if b.ShoeSizes == nil {
		b.ShoeSizes = []ShoeSize{}
	}

	return b
}
