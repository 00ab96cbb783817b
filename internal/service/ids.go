package service

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// newID 產生新的 ULID 字串，測試時可替換
var newID = func() string {
	return ulid.Make().String()
}

var timeNow = time.Now
