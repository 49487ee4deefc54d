package web

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/go-playground/validator/v10"

	"github.com/JonMunkholm/ledgerview/internal/viewmodel"
)

var errInvalidInput = errors.New("invalid input")

// filterForm is the body of POST /filter. An empty fund means "all".
type filterForm struct {
	Fund string `validate:"max=512"`
}

// sortForm is the body of POST /sort/toggle. Sort names the direction the
// button showed as next; without it the direction simply flips.
type sortForm struct {
	Sort string `validate:"omitempty,oneof=asc desc"`
}

// viewQuery is the query of GET /api/view. Empty fields fall back to the
// session state.
type viewQuery struct {
	Fund string `validate:"max=512"`
	Sort string `validate:"omitempty,oneof=asc desc"`
}

func newValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

// check validates v and wraps failures so they map to REQ001.
func (s *Server) check(v any) error {
	if err := s.validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%w: %s failed %q", errInvalidInput, verrs[0].Field(), verrs[0].Tag())
		}
		return fmt.Errorf("%w: %v", errInvalidInput, err)
	}
	return nil
}

func parseViewQuery(q url.Values) viewQuery {
	return viewQuery{
		Fund: q.Get("fund"),
		Sort: q.Get("sort"),
	}
}

// resolve applies the query over the session's current filter and sort.
func (q viewQuery) resolve(model *viewmodel.Model) (string, viewmodel.SortDirection) {
	filter := q.Fund
	if filter == "" {
		filter = model.Filter()
	}
	dir, ok := viewmodel.ParseSortDirection(q.Sort)
	if !ok {
		dir = model.Sort()
	}
	return filter, dir
}
