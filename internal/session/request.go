package session

import (
	"net/http"
	"strings"
)

const bearerPrefix = "Bearer "

// cookieStore exposes request cookies as a Store
type cookieStore struct {
	r *http.Request
}

func (c cookieStore) Get(key string) string {
	cookie, err := c.r.Cookie(key)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// FromRequest extracts the session a request navigates with. A bearer token
// is used when codec is set and the header is present; otherwise the
// username and role cookies are read. An unreadable token yields Anonymous.
func FromRequest(r *http.Request, codec *TokenCodec) (Session, error) {
	if header := r.Header.Get("Authorization"); codec != nil && header != "" {
		if !strings.HasPrefix(header, bearerPrefix) {
			return Anonymous, ErrInvalidToken
		}
		return codec.Decode(strings.TrimPrefix(header, bearerPrefix))
	}
	return FromStore(cookieStore{r: r}), nil
}
