package types

import "mime/multipart"

// InfoRequest is the parsed form of a POST /info call.
type InfoRequest struct {
	Message string
	File    *multipart.FileHeader
}
