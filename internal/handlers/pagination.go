package handlers

import (
	"math"
	"net/url"
	"strconv"

	"reviewhub/internal/repositories"
	"reviewhub/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Paginator reads page and page_size query parameters and renders pages as
// {count, next, previous, results}.
type Paginator struct {
	DefaultSize int
	MaxSize     int
}

type pageResponse struct {
	Count    int64       `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  interface{} `json:"results"`
}

// Page parses the requested page. page_size is capped at MaxSize and page at
// the last number whose offset fits in an int.
func (p Paginator) Page(c *fiber.Ctx) (repositories.Page, error) {
	page := repositories.Page{Number: 1, Size: p.DefaultSize}

	if raw := c.Query("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return page, validation.NewError("page", "a valid positive integer is required")
		}
		page.Number = n
	}
	if raw := c.Query("page_size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return page, validation.NewError("page_size", "a valid positive integer is required")
		}
		page.Size = n
	}
	if p.MaxSize > 0 && page.Size > p.MaxSize {
		page.Size = p.MaxSize
	}
	if page.Size > 0 && page.Number > math.MaxInt/page.Size {
		page.Number = math.MaxInt / page.Size
	}
	return page, nil
}

// Respond writes one page of results out of total.
func (p Paginator) Respond(c *fiber.Ctx, page repositories.Page, total int64, results interface{}) error {
	resp := pageResponse{Count: total, Results: results}
	if int64(page.Offset()) < total-int64(page.Size) {
		resp.Next = pageLink(c, page.Number+1)
	}
	if page.Number > 1 {
		resp.Previous = pageLink(c, page.Number-1)
	}
	return c.JSON(resp)
}

func pageLink(c *fiber.Ctx, number int) *string {
	u, err := url.Parse(c.OriginalURL())
	if err != nil {
		return nil
	}
	q := u.Query()
	if number == 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(number))
	}
	link := c.BaseURL() + u.Path
	if encoded := q.Encode(); encoded != "" {
		link += "?" + encoded
	}
	return &link
}
