package records

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/selimozcann/doicheck/internal/model"
)

// ErrMalformedRow is wrapped by every row-level error.
var ErrMalformedRow = errors.New("malformed row")

// MalformedRowError describes a CSV row that cannot become a Record.
type MalformedRowError struct {
	Line   int
	Fields int
	Reason string
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("line %d: malformed row (%d field(s)): %s", e.Line, e.Fields, e.Reason)
}

func (e *MalformedRowError) Unwrap() error { return ErrMalformedRow }

var validate = validator.New()

// Load reads the CSV file at path.
func Load(path string) ([]model.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open DOI file %q: %w", path, err)
	}
	defer f.Close()

	recs, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read DOI file %q: %w", path, err)
	}
	return recs, nil
}

// Read parses headerless CSV rows of the form doi,standard[,ignored...].
// Fields are trimmed of surrounding whitespace and must not be empty.
func Read(r io.Reader) ([]model.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	// Allows hand-edited rows such as `doi, "https://x/y"`.
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	var recs []model.Record
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)

		if len(row) < 2 {
			return nil, &MalformedRowError{Line: line, Fields: len(row), Reason: "expected doi and standard URL columns"}
		}
		rec := model.Record{
			DOI:      strings.TrimSpace(row[0]),
			Standard: strings.TrimSpace(row[1]),
			Line:     line,
		}
		if err := validate.Struct(rec); err != nil {
			return nil, &MalformedRowError{Line: line, Fields: len(row), Reason: describe(err)}
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s is empty", strings.ToLower(fe.Field())))
	}
	return strings.Join(msgs, ", ")
}
