package depotskat

import (
	"encoding/base64"
	"fmt"
	"math"

	"github.com/bkrogh/depotskat/date"
	"github.com/vmihailenco/msgpack/v5"
)

// packedHistory is the msgpack payload of a compressed price history.
// Dates are delta-encoded in days, closes in hundredths, so a multi-year
// daily history packs into a short text blob suitable for synced files.
type packedHistory struct {
	Start string  `msgpack:"start"` // first day, ISO form
	First int64   `msgpack:"first"` // first close, in hundredths
	Days  []int   `msgpack:"days"`  // day deltas between consecutive points
	Cents []int64 `msgpack:"cents"` // close deltas, in hundredths
}

// Compress encodes a price history into a compact text form. Closes are
// rounded to 2 decimals, dates keep day granularity; both round-trip
// exactly through Decompress. An empty history compresses to "".
func Compress(h *date.History) (string, error) {
	if h == nil || h.Len() == 0 {
		return "", nil
	}
	var p packedHistory
	var prevDay date.Date
	var prevCents int64
	first := true
	for on, v := range h.Values() {
		cents := int64(math.Round(v * 100))
		if first {
			p.Start = on.String()
			p.First = cents
			first = false
		} else {
			p.Days = append(p.Days, on.Sub(prevDay))
			p.Cents = append(p.Cents, cents-prevCents)
		}
		prevDay, prevCents = on, cents
	}
	raw, err := msgpack.Marshal(&p)
	if err != nil {
		return "", fmt.Errorf("cannot pack history: %w", err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// Decompress rebuilds a price history from its compressed text form.
func Decompress(packed string) (*date.History, error) {
	h := &date.History{}
	if packed == "" {
		return h, nil
	}
	raw, err := base64.StdEncoding.DecodeString(packed)
	if err != nil {
		return nil, fmt.Errorf("cannot decode packed history: %w", err)
	}
	var p packedHistory
	if err := msgpack.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("cannot unpack history: %w", err)
	}
	if len(p.Days) != len(p.Cents) {
		return nil, fmt.Errorf("corrupt packed history: %d day deltas, %d price deltas", len(p.Days), len(p.Cents))
	}
	on, err := date.Parse(p.Start)
	if err != nil {
		return nil, fmt.Errorf("corrupt packed history: %w", err)
	}
	cents := p.First
	h.Append(on, float64(cents)/100)
	for i := range p.Days {
		on = on.Add(p.Days[i])
		cents += p.Cents[i]
		h.Append(on, float64(cents)/100)
	}
	return h, nil
}
