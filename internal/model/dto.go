package model

// Response shapes of the events, auth and AI services. Field names follow
// the JSON the backends emit; nothing here is persisted locally.

type UserResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// LoginResponse carries both tokens; expiries are TTLs in milliseconds.
type LoginResponse struct {
	AccessToken        string       `json:"accessToken"`
	RefreshToken       string       `json:"refreshToken"`
	AccessTokenExpiry  int64        `json:"accessTokenExpiry"`
	RefreshTokenExpiry int64        `json:"refreshTokenExpiry"`
	User               UserResponse `json:"user"`
}

// RefreshResponse rotates the access token only.
type RefreshResponse struct {
	AccessToken       string       `json:"accessToken"`
	AccessTokenExpiry int64        `json:"accessTokenExpiry"`
	User              UserResponse `json:"user"`
}

type SignupResponse struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
}

type Comment struct {
	CommentID int64  `json:"commentId"`
	ContentID int64  `json:"contentId"`
	UserID    int64  `json:"userId"`
	Username  string `json:"username"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// CommentPage is one cursor page of a comment feed. A nil NextCursor marks
// the terminal page.
type CommentPage struct {
	Comments   []Comment `json:"commentResponseList"`
	NextCursor *string   `json:"nextCursor"`
}

type EventSummary struct {
	ContentID      int64  `json:"contentId"`
	Title          string `json:"title"`
	Area           string `json:"area"`
	FirstImage     string `json:"firstImage"`
	EventStartDate string `json:"eventStartDate"`
	EventEndDate   string `json:"eventEndDate"`
}

// EventListPage is the Spring Data page envelope of the events service.
type EventListPage struct {
	Content       []EventSummary `json:"content"`
	TotalPages    int            `json:"totalPages"`
	TotalElements int64          `json:"totalElements"`
	Number        int            `json:"number"`
	Size          int            `json:"size"`
	First         bool           `json:"first"`
	Last          bool           `json:"last"`
	Empty         bool           `json:"empty"`
}

type EventDetail struct {
	ContentID      int64   `json:"contentId"`
	Title          string  `json:"title"`
	CreatedTime    string  `json:"createdTime"`
	ModifiedTime   string  `json:"modifiedTime"`
	Addr1          string  `json:"addr1"`
	Addr2          string  `json:"addr2"`
	Area           string  `json:"area"`
	FirstImage     string  `json:"firstImage"`
	FirstImage2    string  `json:"firstImage2"`
	MapX           float64 `json:"mapX"`
	MapY           float64 `json:"mapY"`
	ZipCode        string  `json:"zipCode"`
	Homepage       string  `json:"homepage"`
	Overview       string  `json:"overview"`
	EventStartDate string  `json:"eventStartDate"`
	EventEndDate   string  `json:"eventEndDate"`
	PlayTime       string  `json:"playTime"`
	UseTimeFest    string  `json:"useTimeFestival"`
	Sponsor1       string  `json:"sponsor1"`
	Sponsor1Tel    string  `json:"sponsor1Tel"`
	Sponsor2       string  `json:"sponsor2"`
	Sponsor2Tel    string  `json:"sponsor2Tel"`
	DBUpdatedAt    string  `json:"dbUpdatedAt"`
	FavoriteStatus bool    `json:"favoriteStatus"`
}

type FavoriteResponse struct {
	ContentID      int64 `json:"contentId"`
	FavoriteStatus bool  `json:"favoriteStatus"`
}

type CommentEmotion struct {
	Overall      string             `json:"overall"`
	Ratio        map[string]float64 `json:"ratio"`
	MainEmotions []string           `json:"mainEmotions"`
}

type CommentAnalysis struct {
	Summary  string         `json:"summary"`
	Keywords []string       `json:"keywords"`
	Emotion  CommentEmotion `json:"emotion"`
}

// ErrorResponse is the error body every backend emits on non-2xx.
type ErrorResponse struct {
	Message string `json:"message"`
}
