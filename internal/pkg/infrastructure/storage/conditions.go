package storage

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/hackforla/map-service/pkg/types"
)

var ErrInvalidCondition = errors.New("invalid query condition")

type ConditionFunc func(*Condition) *Condition

// Condition restricts a query. Zero dates and empty sets do not restrict it.
type Condition struct {
	StartDate    time.Time
	EndDate      time.Time
	RequestTypes []string
	NCs          []string

	err error
}

// WithStartDate accepts the same layouts as the created date of a seeded
// request. An empty string leaves the start of the range open.
func WithStartDate(startDate string) ConditionFunc {
	return func(c *Condition) *Condition {
		c.StartDate = c.parseDate("start date", startDate)
		return c
	}
}

// WithEndDate is inclusive, a request created exactly at the end date matches.
func WithEndDate(endDate string) ConditionFunc {
	return func(c *Condition) *Condition {
		c.EndDate = c.parseDate("end date", endDate)
		return c
	}
}

func WithRequestTypes(requestTypes []string) ConditionFunc {
	return func(c *Condition) *Condition {
		c.RequestTypes = lo.Uniq(requestTypes)
		return c
	}
}

func WithNCs(ncs []string) ConditionFunc {
	return func(c *Condition) *Condition {
		c.NCs = lo.Uniq(ncs)
		return c
	}
}

// WithFilter restricts a query to the date range and sets of a filter.
func WithFilter(f types.Filter) []ConditionFunc {
	return []ConditionFunc{
		WithStartDate(f.StartDate),
		WithEndDate(f.EndDate),
		WithRequestTypes(f.RequestTypes),
		WithNCs(f.NCList),
	}
}

func NewCondition(conditions ...ConditionFunc) Condition {
	c := &Condition{}
	for _, f := range conditions {
		c = f(c)
	}
	return *c
}

// Err reports the first condition that could not be parsed.
func (c Condition) Err() error {
	return c.err
}

func (c *Condition) parseDate(name, value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}

	t, err := parseCreatedDate(value)
	if err != nil && c.err == nil {
		c.err = fmt.Errorf("%w: %s %s", ErrInvalidCondition, name, err.Error())
	}

	return t
}

func (c Condition) NamedArgs() map[string]any {
	args := map[string]any{}

	if !c.StartDate.IsZero() {
		args["start_date"] = c.StartDate
	}
	if !c.EndDate.IsZero() {
		args["end_date"] = c.EndDate
	}
	if len(c.RequestTypes) > 0 {
		args["request_types"] = c.RequestTypes
	}
	if len(c.NCs) > 0 {
		args["ncs"] = c.NCs
	}

	return args
}

// Where returns the condition as an sql expression using the named arguments
// from NamedArgs, or an empty string when nothing is restricted.
func (c Condition) Where() string {
	where := []string{}

	if !c.StartDate.IsZero() {
		where = append(where, "createddate >= @start_date")
	}
	if !c.EndDate.IsZero() {
		where = append(where, "createddate <= @end_date")
	}
	if len(c.RequestTypes) > 0 {
		where = append(where, "requesttype IN @request_types")
	}
	if len(c.NCs) > 0 {
		where = append(where, "nc IN @ncs")
	}

	return strings.Join(where, " AND ")
}
