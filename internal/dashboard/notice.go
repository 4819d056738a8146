package dashboard

import "github.com/five82/tally/internal/state"

// Level is the severity of a notice.
type Level int

const (
	LevelSuccess Level = iota
	LevelError
)

// Notice is one user-visible notification.
type Notice struct {
	Level Level
	Text  string
}

var fetchFailedNotice = Notice{Level: LevelError, Text: "Could not fetch data from the server."}

var mutationTexts = map[state.Op][2]string{
	state.OpCreate: {"Product added!", "Failed to add product."},
	state.OpUpdate: {"Product updated!", "Failed to update product."},
	state.OpDelete: {"Product deleted!", "Failed to delete product."},
}

func mutationNotice(op state.Op, ok bool) Notice {
	texts, known := mutationTexts[op]
	if !known {
		texts = [2]string{"Saved.", "Request failed."}
	}
	if ok {
		return Notice{Level: LevelSuccess, Text: texts[0]}
	}
	return Notice{Level: LevelError, Text: texts[1]}
}
