// Package importer bulk-loads events from semicolon separated files.
//
// Each line is DATE;TIME;TYPE;VALUE;NOTE. Rows are committed one by one:
// a bad row is reported and skipped, the rest of the file still lands.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ntotao/baby-tracker/internal/domain"
)

// MaxReportedErrors is how many row errors Report lists before summarizing.
const MaxReportedErrors = 5

// OriginImport marks events written by the importer in details.origin.
const OriginImport = "import"

var dateLayouts = []string{"02/01/2006 15:04", "2006-01-02 15:04"}

type eventAppender interface {
	Append(ctx context.Context, in domain.NewEvent) (*domain.Event, error)
}

// Result summarizes one import run.
type Result struct {
	Imported int
	Errors   []*domain.ImportRowError
}

// Messages returns the first MaxReportedErrors row errors followed by
// a "...e altri N" line when more were dropped.
func (r *Result) Messages() []string {
	out := make([]string, 0, MaxReportedErrors+1)
	for i, e := range r.Errors {
		if i == MaxReportedErrors {
			out = append(out, fmt.Sprintf("...e altri %d", len(r.Errors)-MaxReportedErrors))
			break
		}
		out = append(out, e.Error())
	}
	return out
}

// Report renders the chat summary of the run.
func (r *Result) Report() string {
	var b strings.Builder
	fmt.Fprintf(&b, "✅ Importazione completata!\n\n📥 Importati: %d\n", r.Imported)
	if len(r.Errors) > 0 {
		fmt.Fprintf(&b, "⚠️ Errori (%d):\n%s", len(r.Errors), strings.Join(r.Messages(), "\n"))
	}
	return b.String()
}

// Importer parses files and appends the rows to a tenant log.
type Importer struct {
	events eventAppender
	log    *slog.Logger
}

// New creates an importer writing through events.
func New(log *slog.Logger, events eventAppender) *Importer {
	return &Importer{
		events: events,
		log:    log.With("service", "importer"),
	}
}

// AcceptsFile reports whether a document name looks like an importable file.
func AcceptsFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".txt":
		return true
	}
	return false
}

// Import reads r to the end. Row problems are collected in the result;
// the returned error is set only when reading or storage fails, in which
// case the result still counts the rows committed so far.
func (im *Importer) Import(ctx context.Context, tenant *domain.Tenant, userID int64, r io.Reader) (*Result, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	loc := tenant.Location()
	res := &Result{}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			res.Errors = append(res.Errors, &domain.ImportRowError{Line: perr.Line, Reason: "riga non leggibile"})
			continue
		}
		if err != nil {
			return res, fmt.Errorf("read import: %w", err)
		}

		line, _ := reader.FieldPos(0)
		if isHeader(record) {
			continue
		}

		in, rowErr := parseRow(record, loc)
		if rowErr != "" {
			res.Errors = append(res.Errors, &domain.ImportRowError{Line: line, Reason: rowErr})
			continue
		}
		in.TenantID = tenant.ID
		in.UserID = userID

		if _, err := im.events.Append(ctx, in); err != nil {
			if errors.Is(err, domain.ErrValidation) {
				res.Errors = append(res.Errors, &domain.ImportRowError{Line: line, Reason: err.Error()})
				continue
			}
			return res, fmt.Errorf("import line %d: %w", line, err)
		}
		res.Imported++
	}

	im.log.InfoContext(ctx, "import finished",
		slog.String("tenant_id", tenant.ID.String()),
		slog.Int("imported", res.Imported),
		slog.Int("errors", len(res.Errors)),
	)
	return res, nil
}

func isHeader(record []string) bool {
	first := strings.ToLower(strings.TrimSpace(record[0]))
	return strings.HasPrefix(first, "date") || strings.HasPrefix(first, "data")
}

// parseRow turns one record into an append request. A non-empty string
// is the user-facing reason the row was rejected.
func parseRow(record []string, loc *time.Location) (domain.NewEvent, string) {
	if len(record) < 3 {
		return domain.NewEvent{}, "dati insufficienti"
	}

	cell := func(i int) string {
		if i < len(record) {
			return strings.TrimSpace(record[i])
		}
		return ""
	}

	ts, ok := parseTimestamp(cell(0), cell(1), loc)
	if !ok {
		return domain.NewEvent{}, fmt.Sprintf("data/ora non valida %q", cell(0)+" "+cell(1))
	}

	keyword := strings.ToLower(cell(2))
	value := strings.ToLower(cell(3))
	note := cell(4)

	details := domain.Details{domain.DetailOrigin: OriginImport}
	in := domain.NewEvent{Timestamp: &ts, Details: details}

	switch keyword {
	case "cacca", "poo":
		in.Type = domain.EventTypePoo
	case "pipi", "pipì", "pee":
		in.Type = domain.EventTypePee
	case "allattamento", "feed", "feeding":
		in.Type = domain.EventTypeFeed
		for _, tok := range strings.Fields(value) {
			switch tok {
			case "sx", "left":
				details[domain.DetailSource] = domain.SourceLeft
			case "dx", "right":
				details[domain.DetailSource] = domain.SourceRight
			default:
				if mins, ok := parseMinutes(tok); ok {
					setDuration(details, mins)
				}
			}
		}
		if mins, ok := parseMinutes(strings.ToLower(note)); ok {
			setDuration(details, mins)
			note = ""
		}
	case "biberon", "bottle":
		in.Type = domain.EventTypeFeed
		details[domain.DetailSource] = domain.SourceBottle
		if value != "" {
			ml, err := parseNumber(strings.TrimSuffix(value, "ml"))
			if err != nil {
				return domain.NewEvent{}, fmt.Sprintf("quantità non valida %q", value)
			}
			details[domain.DetailQuantityML] = ml
		}
	case "peso", "weight":
		in.Type = domain.EventTypeWeight
	case "altezza", "height":
		in.Type = domain.EventTypeHeight
	case "sonno", "sleep":
		in.Type = domain.EventTypeSleep
		if value != "" {
			mins, ok := parseMinutes(value)
			if !ok {
				return domain.NewEvent{}, fmt.Sprintf("durata non valida %q", value)
			}
			setDuration(details, mins)
		}
	default:
		return domain.NewEvent{}, fmt.Sprintf("tipo %q ignoto", keyword)
	}

	if in.Type.IsGrowth() {
		details[domain.DetailUnit] = in.Type.Unit()
		if value != "" {
			v, err := parseNumber(strings.TrimSuffix(strings.TrimSuffix(value, "g"), "cm"))
			if err != nil {
				return domain.NewEvent{}, fmt.Sprintf("valore non valido %q", value)
			}
			details[domain.DetailValue] = v
		}
	}

	if note != "" {
		in.Summary = &note
	}
	return in, ""
}

func parseTimestamp(date, clock string, loc *time.Location) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if ts, err := time.ParseInLocation(layout, date+" "+clock, loc); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// parseMinutes accepts "15", "15m" and "15min".
func parseMinutes(s string) (int, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "min")
	s = strings.TrimSuffix(s, "m")
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func setDuration(d domain.Details, mins int) {
	d[domain.DetailDurationSeconds] = mins * 60
	d[domain.DetailDurationText] = fmt.Sprintf("%d min", mins)
}

// parseNumber accepts a decimal point or comma and requires a positive value.
func parseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", s, domain.ErrInvalidNumber)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%q must be positive: %w", s, domain.ErrInvalidNumber)
	}
	return v, nil
}
