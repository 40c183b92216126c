package limit

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/omniql-engine/sqlkit/engine/models"
)

// ============================================================================
// PAGINATION COMPOSITION
// ============================================================================

// Request is a page request: a bare size, or an (offset, size) pair relative
// to whatever window the query already carries.
type Request struct {
	Offset int
	Size   int
	paged  bool
}

// Size requests at most n rows from the start of the existing window.
func Size(n int) Request {
	return Request{Size: n}
}

// Page requests size rows starting offset rows into the existing window.
func Page(offset, size int) Request {
	return Request{Offset: offset, Size: size, paged: true}
}

// IsPage reports the (offset, size) form.
func (r Request) IsPage() bool {
	return r.paged
}

func (r Request) String() string {
	if r.paged {
		return fmt.Sprintf("%d,%d", r.Offset, r.Size)
	}
	return strconv.Itoa(r.Size)
}

// Compose applies req on top of existing. A nil existing window is unbounded.
//
// A page starting past existingOffset+existingCount is a RangeError; a page starting
// at or after existingCount yields a zero-length window.
func Compose(existing *models.Limit, req Request) (models.Limit, error) {
	if req.Offset < 0 || req.Size < 0 {
		return models.Limit{}, fmt.Errorf("%w: negative limitation %s", models.ErrRange, req)
	}
	if existing == nil {
		if req.paged {
			return models.Limit{Offset: req.Offset, Count: req.Size, Explicit: true}, nil
		}
		return models.Limit{Count: req.Size}, nil
	}

	eo, ec := existing.Offset, existing.Count
	if !req.paged {
		return models.Limit{
			Offset:   eo,
			Count:    min(ec, req.Size),
			Explicit: existing.Explicit || eo != 0,
		}, nil
	}

	if req.Offset > eo+ec {
		return models.Limit{}, &models.RangeError{ExistingOffset: eo, ExistingCount: ec, PageOffset: req.Offset}
	}
	if req.Offset >= ec {
		return models.Limit{Offset: eo + req.Offset, Count: 0, Explicit: true}, nil
	}
	return models.Limit{
		Offset:   eo + req.Offset,
		Count:    min(ec-req.Offset, req.Size),
		Explicit: true,
	}, nil
}

// ============================================================================
// RAW SQL PATCHING
// ============================================================================

// trailing LIMIT clause; parentheses and quotes stop the match so a LIMIT inside
// a sub-query or literal is never picked up
var limitClause = regexp.MustCompile(`(?is)\sLIMIT\s+([^()'"]*?)\s*$`)

// trailing row-locking clause, which MySQL places after LIMIT
var lockingClause = regexp.MustCompile(`(?is)\s(?:FOR\s+(?:UPDATE|SHARE)|LOCK\s+IN\s+SHARE\s+MODE)(?:\s+(?:NOWAIT|SKIP\s+LOCKED))?$`)

var (
	limitCount    = regexp.MustCompile(`^(\d+)$`)
	limitComma    = regexp.MustCompile(`^(\d+)\s*,\s*(\d+)$`)
	limitOffsetKw = regexp.MustCompile(`(?i)^(\d+)\s+OFFSET\s+(\d+)$`)
)

func trimStatement(sql string) string {
	return strings.TrimRight(strings.TrimSpace(sql), "; \t\r\n")
}

// splitLocking separates a trailing FOR UPDATE / FOR SHARE / LOCK IN SHARE MODE.
func splitLocking(sql string) (body, lock string) {
	loc := lockingClause.FindStringIndex(sql)
	if loc == nil {
		return sql, ""
	}
	return strings.TrimSpace(sql[:loc[0]]), strings.TrimSpace(sql[loc[0]:])
}

func withLocking(body, lock string) string {
	if lock == "" {
		return body
	}
	return body + " " + lock
}

// HasClause reports whether sql ends in a LIMIT clause, ignoring a trailing locking clause.
func HasClause(sql string) bool {
	body, _ := splitLocking(trimStatement(sql))
	return limitClause.MatchString(body)
}

// Extract strips a trailing LIMIT clause and returns it normalized to (offset, count).
// The returned limit is nil when sql has no LIMIT clause. A locking clause after
// the LIMIT stays in the returned statement.
func Extract(sql string) (string, *models.Limit, error) {
	body, lock, l, err := extract(sql)
	if err != nil {
		return "", nil, err
	}
	return withLocking(body, lock), l, nil
}

func extract(sql string) (body, lock string, l *models.Limit, err error) {
	body, lock = splitLocking(trimStatement(sql))
	loc := limitClause.FindStringSubmatchIndex(body)
	if loc == nil {
		return body, lock, nil, nil
	}
	arg := strings.TrimSpace(body[loc[2]:loc[3]])
	stripped := strings.TrimSpace(body[:loc[0]])

	toInt := func(s string) int {
		n, _ := strconv.Atoi(s)
		return n
	}
	switch {
	case limitCount.MatchString(arg):
		return stripped, lock, &models.Limit{Count: toInt(arg)}, nil
	case limitComma.MatchString(arg):
		m := limitComma.FindStringSubmatch(arg)
		return stripped, lock, &models.Limit{Offset: toInt(m[1]), Count: toInt(m[2]), Explicit: true}, nil
	case limitOffsetKw.MatchString(arg):
		m := limitOffsetKw.FindStringSubmatch(arg)
		return stripped, lock, &models.Limit{Offset: toInt(m[2]), Count: toInt(m[1]), Explicit: true}, nil
	}
	return "", "", nil, &models.ParseError{Text: strings.TrimSpace(body[loc[0]:]), Message: "limitation format not supported"}
}

// Patch composes req with the LIMIT clause already present in sql and re-appends
// a canonical "LIMIT offset,count" ahead of any locking clause.
func Patch(sql string, req Request) (string, error) {
	body, lock, existing, err := extract(sql)
	if err != nil {
		return "", err
	}
	l, err := Compose(existing, req)
	if err != nil {
		return "", err
	}
	return withLocking(fmt.Sprintf("%s LIMIT %d,%d", body, l.Offset, l.Count), lock), nil
}

// Clause renders a window: "LIMIT offset,count" when the offset is explicit or
// non-zero, "LIMIT count" otherwise.
func Clause(l models.Limit) string {
	if l.Explicit || l.Offset != 0 {
		return fmt.Sprintf("LIMIT %d,%d", l.Offset, l.Count)
	}
	return fmt.Sprintf("LIMIT %d", l.Count)
}
