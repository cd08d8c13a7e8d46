package server

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/momtheprogram/api-final-writers-blog/internal/models"

	"github.com/gofiber/fiber/v2"
)

// fail reports an error with the status derived from its code.
func fail(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, models.HTTPStatus(err), err)
}

// currentUserID returns the authenticated principal set by AuthRequired.
func currentUserID(c *fiber.Ctx) uint {
	if id, ok := c.Locals("userID").(uint); ok {
		return id
	}
	return 0
}

// parseID parses a positive numeric path parameter.
func parseID(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, models.NewNotFoundError("Resource", raw)
	}
	return uint(id), nil
}

// pageWindow describes the requested collection window. The envelope is
// produced only when the client sent a limit parameter; a bare list
// request returns a plain JSON array.
type pageWindow struct {
	Limit     int
	Offset    int
	Enveloped bool
}

// parsePagination reads limit/offset query parameters. Offset without
// limit does not trigger the envelope.
func parsePagination(c *fiber.Ctx) (pageWindow, error) {
	var w pageWindow

	rawLimit := c.Query("limit")
	if rawLimit == "" {
		return w, nil
	}

	limit, err := strconv.Atoi(rawLimit)
	if err != nil || limit < 0 {
		return w, models.NewFieldValidationError("limit", "A valid non-negative integer is required")
	}

	offset := 0
	if rawOffset := c.Query("offset"); rawOffset != "" {
		offset, err = strconv.Atoi(rawOffset)
		if err != nil || offset < 0 {
			return w, models.NewFieldValidationError("offset", "A valid non-negative integer is required")
		}
	}

	w.Limit = limit
	w.Offset = offset
	w.Enveloped = true
	return w, nil
}

// pageURL rebuilds the list URL with a different offset, preserving any
// other query parameters.
func pageURL(c *fiber.Ctx, w pageWindow, offset int) *string {
	values, err := url.ParseQuery(string(c.Request().URI().QueryString()))
	if err != nil {
		values = url.Values{}
	}
	values.Set("limit", strconv.Itoa(w.Limit))
	if offset > 0 {
		values.Set("offset", strconv.Itoa(offset))
	} else {
		values.Del("offset")
	}

	u := fmt.Sprintf("%s%s?%s", c.BaseURL(), c.Path(), values.Encode())
	return &u
}

// envelope wraps a results window in the count/next/previous shape.
func envelope(c *fiber.Ctx, w pageWindow, count int64, results interface{}) models.PageResponse {
	page := models.PageResponse{
		Count:   count,
		Results: results,
	}
	if w.Offset+w.Limit < int(count) && w.Limit > 0 {
		page.Next = pageURL(c, w, w.Offset+w.Limit)
	}
	if w.Offset > 0 {
		page.Previous = pageURL(c, w, w.Offset-w.Limit)
	}
	return page
}
