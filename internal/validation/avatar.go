package validation

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

var avatarExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
}

// ValidateAvatar checks that an avatar value is a well-formed http(s) URL
// pointing at an image file. An empty value is allowed; the field is optional.
func ValidateAvatar(avatar string) error {
	if avatar == "" {
		return nil
	}

	u, err := url.Parse(avatar)
	if err != nil || u.Host == "" {
		return fmt.Errorf("avatar must be a valid URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("avatar URL must use http or https")
	}

	ext := strings.ToLower(path.Ext(u.Path))
	if _, ok := avatarExtensions[ext]; !ok {
		return fmt.Errorf("avatar URL must point to an image file (jpg, jpeg, png, gif, webp)")
	}
	return nil
}
