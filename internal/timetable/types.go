package timetable

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Sheet is one tab of the uploaded workbook as listed by the backend.
type Sheet struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
}

// Cell is a single course-code entry with its category.
type Cell struct {
	Code     string
	Category Category
}

// NewCell classifies code and returns the cell.
func NewCell(code string) Cell {
	return Cell{Code: code, Category: Classify(code)}
}

// Timetable maps day -> time slot -> cell, preserving the day order the
// backend sent.
type Timetable struct {
	days  []string
	cells map[string]map[string]Cell
}

// Days returns the day keys in backend order.
func (t Timetable) Days() []string {
	out := make([]string, len(t.days))
	copy(out, t.days)
	return out
}

// Lookup returns the cell for day and slot. Missing days and slots yield the
// zero Cell (empty code, CategoryNone).
func (t Timetable) Lookup(day, slot string) Cell {
	return t.cells[day][slot]
}

// Len returns the number of days.
func (t Timetable) Len() int { return len(t.days) }

// Set records code at day/slot, appending day to the order on first use.
func (t *Timetable) Set(day, slot, code string) {
	t.ensureDay(day)
	t.cells[day][slot] = NewCell(code)
}

// AddDay appends an empty day, keeping its position if it already exists.
func (t *Timetable) AddDay(day string) {
	t.ensureDay(day)
}

func (t *Timetable) ensureDay(day string) {
	if t.cells == nil {
		t.cells = make(map[string]map[string]Cell)
	}
	if _, ok := t.cells[day]; !ok {
		t.days = append(t.days, day)
		t.cells[day] = make(map[string]Cell)
	}
}

var errNotObject = errors.New("timetable must be a JSON object")

// UnmarshalJSON decodes {"Monday": {"08:00 AM": "UEC301 L"}, ...} keeping key
// order. Null slot values decode as empty codes.
func (t *Timetable) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errNotObject
	}

	var out Timetable
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		day, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("unexpected key token %v", keyTok)
		}
		var slots map[string]*string
		if err := dec.Decode(&slots); err != nil {
			return fmt.Errorf("day %q: %w", day, err)
		}
		out.AddDay(day)
		for slot, code := range slots {
			if code != nil {
				out.Set(day, slot, *code)
			}
		}
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*t = out
	return nil
}

// MarshalJSON writes the timetable back out in day order.
func (t Timetable) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, day := range t.days {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(day)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		slots := make(map[string]string, len(t.cells[day]))
		for slot, cell := range t.cells[day] {
			slots[slot] = cell.Code
		}
		val, err := json.Marshal(slots)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Result is the /timetable/ success payload.
type Result struct {
	TutorialGroup string    `json:"tutorial_group"`
	SheetName     string    `json:"sheet_name"`
	TimeSlots     []string  `json:"time_slots"`
	Timetable     Timetable `json:"timetable"`
}

// UnmarshalJSON rejects payloads missing time_slots or timetable, which
// cannot be rendered.
func (r *Result) UnmarshalJSON(data []byte) error {
	var raw struct {
		TutorialGroup string     `json:"tutorial_group"`
		SheetName     string     `json:"sheet_name"`
		TimeSlots     *[]string  `json:"time_slots"`
		Timetable     *Timetable `json:"timetable"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.TimeSlots == nil {
		return errors.New("missing time_slots")
	}
	if raw.Timetable == nil {
		return errors.New("missing timetable")
	}
	*r = Result{
		TutorialGroup: raw.TutorialGroup,
		SheetName:     raw.SheetName,
		TimeSlots:     *raw.TimeSlots,
		Timetable:     *raw.Timetable,
	}
	return nil
}

// Caption names the group and sheet of the result, as shown above a
// rendered table.
func (r Result) Caption() string {
	return fmt.Sprintf("Timetable for \"%s\" from \"%s\"", r.TutorialGroup, r.SheetName)
}
