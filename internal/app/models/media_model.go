package models

// MediaAsset is a file stored with the media provider.
type MediaAsset struct {
	URL          string
	PublicID     string
	ResourceType string
}

// MediaKind selects the MIME allow-list an upload is checked against.
type MediaKind int

const (
	MediaKindImage MediaKind = iota
	MediaKindVideo
)

var allowedMIMETypes = map[MediaKind][]string{
	MediaKindImage: {"image/jpeg", "image/png", "image/gif", "image/webp"},
	MediaKindVideo: {"video/mp4", "video/mpeg", "video/webm", "video/avi", "video/x-msvideo"},
}

func (k MediaKind) AllowedMIMETypes() []string {
	return allowedMIMETypes[k]
}

func (k MediaKind) String() string {
	if k == MediaKindVideo {
		return "video"
	}
	return "image"
}
