package rest

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-boxoffice/internal/domain"
	"github.com/feral-file/ff-boxoffice/internal/store"
)

const MAX_PAGE_SIZE = 100

// ListEventsQueryParams holds query parameters for GET /events
type ListEventsQueryParams struct {
	// Filters
	Status    string `form:"status"`
	Organizer string `form:"organizer"`

	// Pagination
	Limit  int    `form:"limit,default=20"`
	Offset uint64 `form:"offset,default=0"`
}

// ParseListEventsQuery parses query parameters for GET /events
func ParseListEventsQuery(c *gin.Context) (*ListEventsQueryParams, error) {
	var params ListEventsQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	// Cap limit
	if params.Limit > MAX_PAGE_SIZE {
		params.Limit = MAX_PAGE_SIZE
	}

	// Validate status filter when given
	if params.Status != "" && !domain.IsValidEventStatus(domain.EventStatus(params.Status)) {
		return nil, fmt.Errorf("invalid status: %s", params.Status)
	}

	return &params, nil
}

// ToFilter converts the parsed query into a store filter
func (p *ListEventsQueryParams) ToFilter() store.EventFilter {
	filter := store.EventFilter{
		Limit:  p.Limit,
		Offset: p.Offset,
	}
	if p.Status != "" {
		status := domain.EventStatus(p.Status)
		filter.Status = &status
	}
	if p.Organizer != "" {
		organizer := domain.NormalizeAddress(p.Organizer)
		filter.Organizer = &organizer
	}
	return filter
}

// ListReceiptsQueryParams holds query parameters for GET /receipts
type ListReceiptsQueryParams struct {
	// Filters
	Kinds []string `form:"kind"`

	// Pagination
	Limit  int    `form:"limit,default=20"`
	Offset uint64 `form:"offset,default=0"`
}

// ParseListReceiptsQuery parses query parameters for GET /receipts
func ParseListReceiptsQuery(c *gin.Context) (*ListReceiptsQueryParams, error) {
	var params ListReceiptsQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	// Cap limit
	if params.Limit > MAX_PAGE_SIZE {
		params.Limit = MAX_PAGE_SIZE
	}

	return &params, nil
}

// ToFilter converts the parsed query into a store filter. An unknown kind
// simply matches nothing.
func (p *ListReceiptsQueryParams) ToFilter() store.ReceiptFilter {
	kinds := make([]domain.ReceiptKind, 0, len(p.Kinds))
	for _, kind := range p.Kinds {
		kinds = append(kinds, domain.ReceiptKind(kind))
	}
	return store.ReceiptFilter{
		Kinds:  kinds,
		Limit:  p.Limit,
		Offset: p.Offset,
	}
}

// ListHoldingsQueryParams holds query parameters for GET /tickets/:owner
type ListHoldingsQueryParams struct {
	Limit  int    `form:"limit,default=20"`
	Offset uint64 `form:"offset,default=0"`
}

// ParseListHoldingsQuery parses query parameters for GET /tickets/:owner
func ParseListHoldingsQuery(c *gin.Context) (*ListHoldingsQueryParams, error) {
	var params ListHoldingsQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	// Cap limit
	if params.Limit > MAX_PAGE_SIZE {
		params.Limit = MAX_PAGE_SIZE
	}

	return &params, nil
}
