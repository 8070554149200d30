package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/activitylens/activitylens/internal/domain/entity"
	"github.com/activitylens/activitylens/internal/shared/types"
	"github.com/activitylens/activitylens/pkg/jsontree"
)

// Extraction paths into the account-export tree. The export nests every
// category three levels deep under human-readable section names.
var (
	userNamePath      = []string{"Profile", "Profile Info", "ProfileMap", "userName"}
	emailPath         = []string{"Profile", "Profile Info", "ProfileMap", "emailAddress"}
	phonePath         = []string{"Profile", "Profile Info", "ProfileMap", "telephoneNumber"}
	bioPath           = []string{"Profile", "Profile Info", "ProfileMap", "bioDescription"}
	birthDatePath     = []string{"Profile", "Profile Info", "ProfileMap", "birthDate"}
	likesReceivedPath = []string{"Profile", "Profile Info", "ProfileMap", "likesReceived"}

	appLanguagePath     = []string{"App Settings", "Settings", "SettingsMap", "App Language"}
	privateAccountPath  = []string{"App Settings", "Settings", "SettingsMap", "Private Account"}
	personalizedAdsPath = []string{"App Settings", "Settings", "SettingsMap", "PersonalizedAds"}
	keywordFiltersPath  = []string{"App Settings", "Settings", "SettingsMap", "Content Preferences", "Keyword filters for videos in For You feed"}

	watchHistoryPath   = []string{"Your Activity", "Watch History", "VideoList"}
	likeListPath       = []string{"Your Activity", "Like List", "ItemFavoriteList"}
	commentListPath    = []string{"Comment", "Comments", "CommentsList"}
	searchListPath     = []string{"Your Activity", "Searches", "SearchList"}
	shareHistoryPath   = []string{"Your Activity", "Share History", "ShareHistoryList"}
	loginHistoryPath   = []string{"Your Activity", "Login History", "LoginHistoryList"}
	followerListPath   = []string{"Your Activity", "Follower", "FansList"}
	followingListPath  = []string{"Your Activity", "Following", "Following"}
	favoriteVideosPath = []string{"Your Activity", "Favorite Videos", "FavoriteVideoList"}
	favoriteSoundsPath = []string{"Your Activity", "Favorite Sounds", "FavoriteSoundList"}
	blockedUsersPath   = []string{"App Settings", "Block List", "BlockList"}

	orderHistoryPath    = []string{"TikTok Shop", "Order History", "OrderHistories"}
	productBrowsingPath = []string{"TikTok Shop", "Product Browsing History", "ProductBrowsingHistories"}
	shoppingCartPath    = []string{"TikTok Shop", "Shopping Cart List", "ShoppingCart"}
	savedAddressesPath  = []string{"TikTok Shop", "Saved Address Information", "SavedAddress"}
	savedPayCardsPath   = []string{"TikTok Shop", "Current Payment Information", "PayCard"}

	watchLivePath = []string{"Tiktok Live", "Watch Live History", "WatchLiveMap"}

	offPlatformPath = []string{"Ads and data", "Off TikTok Activity", "OffTikTokActivityDataList"}

	dmChatHistoryPath = []string{"Direct Message", "Direct Messages", "ChatHistory"}
)

const notAvailable = "N/A"

// RunSocialReport runs the account-export pipeline: load the single
// payload file, extract headline metrics, display them and optionally
// export the full detail report.
func (uc *AnalyzerUseCase) RunSocialReport(ctx context.Context, args *types.CLIArgs) error {
	uc.console.LogInfo("Analyzing account export from %s", args.Archive)

	archivePath, err := uc.archiveRepo.FindArchive(args.Archive)
	if err != nil {
		uc.console.LogError("Could not locate the export archive: %s", err)
		return nil
	}

	pattern := args.Pattern
	if pattern == "" {
		pattern = DefaultTreePattern
	}

	names, err := uc.archiveRepo.ListMatches(archivePath, pattern)
	if err != nil {
		uc.console.LogError("Could not read the export archive: %s", err)
		return nil
	}

	tree, err := uc.archiveRepo.LoadTree(archivePath, names)
	if err != nil {
		uc.console.LogError("Could not decode the export payload: %s", err)
		return nil
	}
	if len(tree) == 0 {
		uc.console.LogWarning("The export payload is empty; nothing to analyze")
		return nil
	}

	insights := ExtractInsights(tree)
	uc.displayInsights(insights)

	if args.ReportName != "" && len(args.ReportType) > 0 {
		report := BuildInsightsReport(insights, tree)
		uc.exportReport(report, args)
	}

	return nil
}

// ExtractInsights pulls the headline metrics out of the raw export tree.
// Every absent branch falls back to a zero count or the N/A sentinel.
func ExtractInsights(tree map[string]any) entity.AccountInsights {
	insights := entity.AccountInsights{
		Username:      jsontree.String(tree, userNamePath, notAvailable),
		Email:         jsontree.String(tree, emailPath, notAvailable),
		PhoneNumber:   jsontree.String(tree, phonePath, notAvailable),
		Bio:           jsontree.String(tree, bioPath, notAvailable),
		BirthDate:     jsontree.String(tree, birthDatePath, notAvailable),
		LikesReceived: jsontree.Int(tree, likesReceivedPath, 0),

		AppLanguage:     jsontree.String(tree, appLanguagePath, notAvailable),
		PrivateAccount:  jsontree.String(tree, privateAccountPath, notAvailable),
		PersonalizedAds: jsontree.String(tree, personalizedAdsPath, notAvailable),
		KeywordFilters:  len(jsontree.List(tree, keywordFiltersPath)),

		VideosWatched:  len(jsontree.List(tree, watchHistoryPath)),
		LikedVideos:    len(jsontree.List(tree, likeListPath)),
		CommentsMade:   len(jsontree.List(tree, commentListPath)),
		Searches:       len(jsontree.List(tree, searchListPath)),
		Shares:         len(jsontree.List(tree, shareHistoryPath)),
		LoginSessions:  len(jsontree.List(tree, loginHistoryPath)),
		Followers:      len(jsontree.List(tree, followerListPath)),
		Following:      len(jsontree.List(tree, followingListPath)),
		FavoriteVideos: len(jsontree.List(tree, favoriteVideosPath)),
		FavoriteSounds: len(jsontree.List(tree, favoriteSoundsPath)),
		BlockedUsers:   len(jsontree.List(tree, blockedUsersPath)),

		ShopOrders:    len(jsontree.Map(tree, orderHistoryPath)),
		ShopBrowsing:  len(jsontree.List(tree, productBrowsingPath)),
		ShopCartItems: len(jsontree.List(tree, shoppingCartPath)),
		ShopAddresses: len(jsontree.List(tree, savedAddressesPath)),
		ShopPayCards:  len(jsontree.List(tree, savedPayCardsPath)),

		OffPlatformEvents: len(jsontree.List(tree, offPlatformPath)),
	}

	liveMap := jsontree.Map(tree, watchLivePath)
	insights.LiveSessions = len(liveMap)
	for _, session := range liveMap {
		comments := jsontree.List(session, []string{"Comments"})
		insights.LiveComments += len(validLiveComments(comments))
	}

	chatHistory := jsontree.Map(tree, dmChatHistoryPath)
	insights.DMChats = len(chatHistory)
	for _, messages := range chatHistory {
		if list, ok := messages.([]any); ok {
			insights.DMMessages += len(list)
		}
	}

	return insights
}

// validLiveComments filters out placeholder comment entries, which the
// export writes with an empty content and a RawTime of -1.
func validLiveComments(comments []any) []string {
	var valid []string
	for _, comment := range comments {
		content := jsontree.String(comment, []string{"CommentContent"}, "")
		rawTime := jsontree.Int(comment, []string{"RawTime"}, -1)
		if content != "" || rawTime != -1 {
			valid = append(valid, content)
		}
	}
	return valid
}

// displayInsights renders the account metrics in category tables.
func (uc *AnalyzerUseCase) displayInsights(insights entity.AccountInsights) {
	uc.console.Println()
	uc.console.LogInfo("Account report for %s", insights.Username)

	uc.metricTable("Profile", [][2]string{
		{"Username", insights.Username},
		{"Email", insights.Email},
		{"Phone Number", insights.PhoneNumber},
		{"Bio", orNA(insights.Bio)},
		{"Birth Date", insights.BirthDate},
		{"Likes Received", strconv.FormatInt(insights.LikesReceived, 10)},
	})

	uc.metricTable("Activity", [][2]string{
		{"Videos Watched", strconv.Itoa(insights.VideosWatched)},
		{"Liked Videos", strconv.Itoa(insights.LikedVideos)},
		{"Comments Made", strconv.Itoa(insights.CommentsMade)},
		{"Searches", strconv.Itoa(insights.Searches)},
		{"Shares", strconv.Itoa(insights.Shares)},
		{"Login Sessions", strconv.Itoa(insights.LoginSessions)},
		{"Followers", strconv.Itoa(insights.Followers)},
		{"Following", strconv.Itoa(insights.Following)},
		{"Favorite Videos", strconv.Itoa(insights.FavoriteVideos)},
		{"Favorite Sounds", strconv.Itoa(insights.FavoriteSounds)},
		{"Blocked Users", strconv.Itoa(insights.BlockedUsers)},
	})

	uc.metricTable("Direct Messages", [][2]string{
		{"Chats", strconv.Itoa(insights.DMChats)},
		{"Total Messages", strconv.Itoa(insights.DMMessages)},
	})

	uc.metricTable("Shop", [][2]string{
		{"Orders Placed", strconv.Itoa(insights.ShopOrders)},
		{"Products Browsed", strconv.Itoa(insights.ShopBrowsing)},
		{"Cart Items", strconv.Itoa(insights.ShopCartItems)},
		{"Saved Addresses", strconv.Itoa(insights.ShopAddresses)},
		{"Saved Payment Cards", strconv.Itoa(insights.ShopPayCards)},
	})

	uc.metricTable("Live", [][2]string{
		{"Sessions Watched", strconv.Itoa(insights.LiveSessions)},
		{"Comments In Live", strconv.Itoa(insights.LiveComments)},
	})

	uc.metricTable("Settings & Other Data", [][2]string{
		{"App Language", insights.AppLanguage},
		{"Private Account", insights.PrivateAccount},
		{"Personalized Ads", insights.PersonalizedAds},
		{"Feed Keyword Filters", strconv.Itoa(insights.KeywordFilters)},
		{"Off-Platform Activity Events", strconv.Itoa(insights.OffPlatformEvents)},
	})
}

func (uc *AnalyzerUseCase) metricTable(title string, rows [][2]string) {
	uc.console.Println()
	uc.console.LogInfo("%s", title)
	table := uc.console.CreateTable()
	table.AddColumn("Metric")
	table.AddColumn("Value")
	for _, row := range rows {
		table.AddRow(row[0], row[1])
	}
	uc.console.Print(table.Render())
}

func orNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}

// detailSection binds an export-tree list to its spreadsheet sheet name.
type detailSection struct {
	sheet string
	path  []string
}

var detailSections = []detailSection{
	{"Watch History", watchHistoryPath},
	{"Liked Videos", likeListPath},
	{"Comments Made", commentListPath},
	{"Search History", searchListPath},
	{"Login History", loginHistoryPath},
	{"Blocked Users", blockedUsersPath},
	{"Followers", followerListPath},
	{"Following", followingListPath},
	{"Favorite Videos", favoriteVideosPath},
	{"Favorite Sounds", favoriteSoundsPath},
	{"Shop Product Browsing", productBrowsingPath},
	{"Shop Shopping Cart", shoppingCartPath},
}

// BuildInsightsReport builds the account report: an overview sheet with
// the headline metrics followed by one sheet per non-empty detail
// category. Empty categories produce no sheet at all.
func BuildInsightsReport(insights entity.AccountInsights, tree map[string]any) entity.Report {
	report := entity.Report{Sheets: []entity.ReportSheet{overviewSheet(insights)}}

	for _, section := range detailSections {
		items := jsontree.List(tree, section.path)
		if block := blockFromList("Details", items); !block.Empty() {
			report.Sheets = append(report.Sheets, entity.ReportSheet{
				Name:   section.sheet,
				Blocks: []entity.ReportBlock{block},
			})
		}
	}

	if block := ordersBlock(jsontree.Map(tree, orderHistoryPath)); !block.Empty() {
		report.Sheets = append(report.Sheets, entity.ReportSheet{
			Name:   "Shop Order History",
			Blocks: []entity.ReportBlock{block},
		})
	}
	if block := liveBlock(jsontree.Map(tree, watchLivePath)); !block.Empty() {
		report.Sheets = append(report.Sheets, entity.ReportSheet{
			Name:   "Watch Live History",
			Blocks: []entity.ReportBlock{block},
		})
	}
	if block := dmBlock(jsontree.Map(tree, dmChatHistoryPath)); !block.Empty() {
		report.Sheets = append(report.Sheets, entity.ReportSheet{
			Name:   "Direct Messages",
			Blocks: []entity.ReportBlock{block},
		})
	}

	return report
}

func overviewSheet(insights entity.AccountInsights) entity.ReportSheet {
	block := entity.ReportBlock{
		Caption: "Account Overview",
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Username", insights.Username},
			{"Email", insights.Email},
			{"Phone Number", insights.PhoneNumber},
			{"Bio", insights.Bio},
			{"Birth Date", insights.BirthDate},
			{"Likes Received", strconv.FormatInt(insights.LikesReceived, 10)},
			{"App Language", insights.AppLanguage},
			{"Private Account", insights.PrivateAccount},
			{"Personalized Ads", insights.PersonalizedAds},
			{"Feed Keyword Filters", strconv.Itoa(insights.KeywordFilters)},
			{"Videos Watched", strconv.Itoa(insights.VideosWatched)},
			{"Liked Videos", strconv.Itoa(insights.LikedVideos)},
			{"Comments Made", strconv.Itoa(insights.CommentsMade)},
			{"Searches", strconv.Itoa(insights.Searches)},
			{"Shares", strconv.Itoa(insights.Shares)},
			{"Login Sessions", strconv.Itoa(insights.LoginSessions)},
			{"Followers", strconv.Itoa(insights.Followers)},
			{"Following", strconv.Itoa(insights.Following)},
			{"Favorite Videos", strconv.Itoa(insights.FavoriteVideos)},
			{"Favorite Sounds", strconv.Itoa(insights.FavoriteSounds)},
			{"Blocked Users", strconv.Itoa(insights.BlockedUsers)},
			{"DM Chats", strconv.Itoa(insights.DMChats)},
			{"DM Messages", strconv.Itoa(insights.DMMessages)},
			{"Shop Orders", strconv.Itoa(insights.ShopOrders)},
			{"Shop Products Browsed", strconv.Itoa(insights.ShopBrowsing)},
			{"Shop Cart Items", strconv.Itoa(insights.ShopCartItems)},
			{"Shop Saved Addresses", strconv.Itoa(insights.ShopAddresses)},
			{"Shop Saved Payment Cards", strconv.Itoa(insights.ShopPayCards)},
			{"Live Sessions Watched", strconv.Itoa(insights.LiveSessions)},
			{"Live Comments Made", strconv.Itoa(insights.LiveComments)},
			{"Off-Platform Activity Events", strconv.Itoa(insights.OffPlatformEvents)},
		},
	}
	return entity.ReportSheet{Name: "Overview", Blocks: []entity.ReportBlock{block}}
}

// blockFromList tabulates a list of loosely-schemaed objects. Headers are
// the sorted union of the keys seen across all items, so every run over
// the same payload produces the same column order.
func blockFromList(caption string, items []any) entity.ReportBlock {
	block := entity.ReportBlock{Caption: caption}

	objects := make([]map[string]any, 0, len(items))
	seen := make(map[string]bool)
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		objects = append(objects, obj)
		for key := range obj {
			seen[key] = true
		}
	}
	if len(objects) == 0 {
		return block
	}

	headers := make([]string, 0, len(seen))
	for key := range seen {
		headers = append(headers, key)
	}
	sort.Strings(headers)

	block.Headers = headers
	for _, obj := range objects {
		row := make([]string, len(headers))
		for i, key := range headers {
			row[i] = cellString(obj[key])
		}
		block.Rows = append(block.Rows, row)
	}
	return block
}

// ordersBlock flattens the order-ID-keyed map, carrying the map key as an
// explicit Order ID column. Order IDs are sorted for deterministic output.
func ordersBlock(orders map[string]any) entity.ReportBlock {
	ids := make([]string, 0, len(orders))
	for id := range orders {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	items := make([]any, 0, len(ids))
	for _, id := range ids {
		details, ok := orders[id].(map[string]any)
		if !ok {
			continue
		}
		flat := make(map[string]any, len(details)+1)
		for key, value := range details {
			flat[key] = value
		}
		flat["Order ID"] = id
		items = append(items, flat)
	}
	return blockFromList("Orders", items)
}

// liveBlock summarizes each watched live session as one row, joining the
// valid comments made during the session.
func liveBlock(liveMap map[string]any) entity.ReportBlock {
	ids := make([]string, 0, len(liveMap))
	for id := range liveMap {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	block := entity.ReportBlock{
		Caption: "Live Sessions",
		Headers: []string{"Session ID", "Watch Time", "Comments"},
	}
	for _, id := range ids {
		session := liveMap[id]
		comments := validLiveComments(jsontree.List(session, []string{"Comments"}))
		block.Rows = append(block.Rows, []string{
			id,
			jsontree.String(session, []string{"WatchTime"}, ""),
			strings.Join(comments, "; "),
		})
	}
	if len(block.Rows) == 0 {
		return entity.ReportBlock{Caption: block.Caption}
	}
	return block
}

// dmBlock flattens every chat's message list into one table, tagging each
// message with the cleaned chat partner name.
func dmBlock(chatHistory map[string]any) entity.ReportBlock {
	chatNames := make([]string, 0, len(chatHistory))
	for name := range chatHistory {
		chatNames = append(chatNames, name)
	}
	sort.Strings(chatNames)

	items := make([]any, 0)
	for _, rawName := range chatNames {
		messages, ok := chatHistory[rawName].([]any)
		if !ok {
			continue
		}
		chatName := strings.ReplaceAll(strings.ReplaceAll(rawName, "Chat History with ", ""), ":", "")
		for _, message := range messages {
			msg, ok := message.(map[string]any)
			if !ok {
				continue
			}
			flat := make(map[string]any, len(msg)+1)
			for key, value := range msg {
				flat[key] = value
			}
			flat["ChatWith"] = chatName
			items = append(items, flat)
		}
	}
	return blockFromList("Messages", items)
}

// cellString renders a decoded JSON value for a spreadsheet cell. Whole
// numbers drop the float formatting the decoder gave them.
func cellString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		if v == math.Trunc(v) && math.Abs(v) < 1e15 {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
