package cache

import (
	"errors"
	"fmt"
)

const (
	TicketKey = "ticket:%d" // cached ticket row, '%d' is the ticket id
)

func MakeTicketKey(ticketID uint) string {
	return fmt.Sprintf(TicketKey, ticketID)
}

var ErrCacheMiss = errors.New("cache miss")
