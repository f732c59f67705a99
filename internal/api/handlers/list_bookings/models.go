package list_bookings

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/evcsm/EVCS-BookingService/internal/api/middleware"
	"github.com/evcsm/EVCS-BookingService/internal/service/bookings/models"
)

// parseQuery converts the listing query string to the service request.
// Date filters accept either RFC 3339 or a bare YYYY-MM-DD date.
func parseQuery(query url.Values, principal *middleware.Principal) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{
		Page:      1,
		PageSize:  0, // service applies the default
		SortBy:    query.Get("sortBy"),
		SortOrder: query.Get("sortOrder"),
		Requester: models.Requester{
			UserID: principal.UserID,
			Role:   principal.Role,
			Nic:    principal.Nic,
		},
	}

	if v := query.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid page: %q", v)
		}
		req.Page = page
	}
	if v := query.Get("pageSize"); v != "" {
		pageSize, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid pageSize: %q", v)
		}
		req.PageSize = pageSize
	}

	if v := query.Get("stationId"); v != "" {
		req.StationID = &v
	}
	if v := query.Get("status"); v != "" {
		req.Status = &v
	}
	if v := query.Get("customerName"); v != "" {
		req.CustomerName = &v
	}
	if v := query.Get("customerNic"); v != "" {
		req.CustomerNic = &v
	}

	if v := query.Get("startDate"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return nil, fmt.Errorf("invalid startDate: %q", v)
		}
		req.StartDate = &t
	}
	if v := query.Get("endDate"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return nil, fmt.Errorf("invalid endDate: %q", v)
		}
		// A bare date upper bound means the whole day.
		if len(v) == len("2006-01-02") {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		req.EndDate = &t
	}

	return req, nil
}

func parseDate(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", v)
}
