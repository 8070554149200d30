package entity

// AccountInsights aggregates the headline metrics extracted from a
// social-app account export tree.
type AccountInsights struct {
	Username      string `json:"username"`
	Email         string `json:"email"`
	PhoneNumber   string `json:"phone_number"`
	Bio           string `json:"bio"`
	BirthDate     string `json:"birth_date"`
	LikesReceived int64  `json:"likes_received"`

	AppLanguage     string `json:"app_language"`
	PrivateAccount  string `json:"private_account"`
	PersonalizedAds string `json:"personalized_ads"`
	KeywordFilters  int    `json:"keyword_filters"`

	VideosWatched  int `json:"videos_watched"`
	LikedVideos    int `json:"liked_videos"`
	CommentsMade   int `json:"comments_made"`
	Searches       int `json:"searches"`
	Shares         int `json:"shares"`
	LoginSessions  int `json:"login_sessions"`
	Followers      int `json:"followers"`
	Following      int `json:"following"`
	FavoriteVideos int `json:"favorite_videos"`
	FavoriteSounds int `json:"favorite_sounds"`
	BlockedUsers   int `json:"blocked_users"`

	DMChats    int `json:"dm_chats"`
	DMMessages int `json:"dm_messages"`

	ShopOrders    int `json:"shop_orders"`
	ShopBrowsing  int `json:"shop_browsing"`
	ShopCartItems int `json:"shop_cart_items"`
	ShopAddresses int `json:"shop_addresses"`
	ShopPayCards  int `json:"shop_pay_cards"`

	LiveSessions      int `json:"live_sessions"`
	LiveComments      int `json:"live_comments"`
	OffPlatformEvents int `json:"off_platform_events"`
}
