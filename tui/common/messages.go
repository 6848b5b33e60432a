package common

import (
	"github.com/CrestNiraj12/feedthread/app"
	"github.com/CrestNiraj12/feedthread/domain"
)

// NoticeMsg delivers a bus notice into the program.
type NoticeMsg struct {
	Notice app.Notice
}

// PostChangedMsg delivers an updated post into the program so lists showing
// it can patch their copy.
type PostChangedMsg struct {
	Post domain.Post
}
