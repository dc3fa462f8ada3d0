package confirmation

import (
	"encoding/json"
	"fmt"
	"io"
	"text/template"

	bk "github.com/hanksha/strajk-bowling-booking/booking"
	"github.com/hanksha/strajk-bowling-booking/form"
	"github.com/hanksha/strajk-bowling-booking/session"
	"go.uber.org/zap"
)

const (
	NoBookingMessage = "Ingen bokning gjord"
	BackToFormAction = "Gå tillbaka till bokning"
	NewBookingAction = "Gör en ny bokning"
)

var confirmedTmpl = template.Must(template.New("confirmed").Parse(`Bokning bekräftad!

Bokningsnummer: {{.BookingNumber}}

Bokningsdetaljer
  Datum: {{.Date}}
  Tid: {{.Time}}
  Antal spelare: {{len .Players}}
  Antal banor: {{.Lanes}}
{{- if .ShoeSizes}}

Skostorlekar
{{- range .ShoeSizes}}
  Spelare {{.Player}}: Storlek {{.Size}}
{{- end}}
{{- end}}

Kostnad
  Spelare ({{len .Players}} × {{.PlayerRate}} kr): {{.Cost.PlayerCost}} kr
  Banor ({{.Lanes}} × {{.LaneRate}} kr): {{.Cost.LaneCost}} kr
  Totalt: {{.TotalPrice}} kr

[{{.Action}}]
`))

type confirmedData struct {
	bk.Booking
	Cost       bk.CostBreakdown
	PlayerRate int
	LaneRate   int
	Action     string
}

// View shows the booking cached by the form. The cache is read once, when the
// view is loaded.
type View struct {
	booking *bk.Booking
}

// New builds a view for a booking that did not come from the session, such as
// one fetched by number.
func New(booking bk.Booking) *View {
	return &View{booking: &booking}
}

// Load reads the cached booking. A missing or unreadable entry gives the
// no-booking view; it is never an error.
func Load(storage session.Storage, logger *zap.Logger) *View {
	if logger == nil {
		logger = zap.NewNop()
	}

	saved, found := storage.GetItem(form.BookingKey)
	if !found {
		return &View{}
	}

	var booking bk.Booking
	if err := json.Unmarshal([]byte(saved), &booking); err != nil {
		logger.Error("failed to read cached booking",
			zap.String("component", "confirmation"),
			zap.Error(err),
		)
		return &View{}
	}

	return &View{booking: &booking}
}

func (v *View) Booking() (bk.Booking, bool) {
	if v.booking == nil {
		return bk.Booking{}, false
	}

	return *v.booking, true
}

func (v *View) HasBooking() bool {
	return v.booking != nil
}

// Breakdown recomputes the costs from players and lanes instead of trusting
// the stored total.
func (v *View) Breakdown() bk.CostBreakdown {
	if v.booking == nil {
		return bk.CostBreakdown{}
	}

	return v.booking.Breakdown()
}

func (v *View) Consistent() bool {
	if v.booking == nil {
		return true
	}

	return v.Breakdown().Total == v.booking.TotalPrice
}

func (v *View) Render(w io.Writer) error {
	if v.booking == nil {
		_, err := fmt.Fprintf(w, "%s\n\n[%s]\n", NoBookingMessage, BackToFormAction)
		return err
	}

	return confirmedTmpl.Execute(w, confirmedData{
		Booking:    *v.booking,
		Cost:       v.Breakdown(),
		PlayerRate: bk.PlayerRate,
		LaneRate:   bk.LaneRate,
		Action:     NewBookingAction,
	})
}
