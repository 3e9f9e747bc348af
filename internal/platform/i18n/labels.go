package i18n

// Label keys used by the browse UI
const (
	Title       Key = "title"
	Speaker     Key = "speaker"
	Party       Key = "party"
	DateFrom    Key = "date_from"
	DateTo      Key = "date_to"
	Location    Key = "location"
	Tribune     Key = "tribune"
	Place       Key = "place"
	View        Key = "view"
	FullSpeech  Key = "full_speech"
	FromTribune Key = "from_tribune"
	All         Key = "all"
	Page        Key = "page"
	Prev        Key = "prev"
	Next        Key = "next"
	Home        Key = "home"
	Speeches    Key = "speeches"
	TribuneYes  Key = "tribune_yes"
	TribuneNo   Key = "tribune_no"
	Date        Key = "date"
	About       Key = "about"
	Search      Key = "search"
	NoSpeeches  Key = "no_speeches"
	LoadFailed  Key = "load_failed"
	FetchFailed Key = "fetch_failed"
	Dates       Key = "dates"
)

var labels = map[Key]map[Lang]string{
	Title:       {BG: "Парламентарни речи", EN: "Parliament Speeches"},
	Speaker:     {BG: "Говорител", EN: "Speaker"},
	Party:       {BG: "Партия", EN: "Party"},
	DateFrom:    {BG: "От дата", EN: "Date From"},
	DateTo:      {BG: "До дата", EN: "Date To"},
	Location:    {BG: "Местоположение", EN: "Location"},
	Tribune:     {BG: "Трибуна", EN: "Tribune"},
	Place:       {BG: "От място", EN: "Seat"},
	View:        {BG: "Кратка реч", EN: "Speech Preview"},
	FullSpeech:  {BG: "Пълна реч", EN: "Full Speech"},
	FromTribune: {BG: "От трибуна", EN: "From tribune"},
	All:         {BG: "Всички", EN: "All"},
	Page:        {BG: "Страница", EN: "Page"},
	Prev:        {BG: "Назад", EN: "Prev"},
	Next:        {BG: "Напред", EN: "Next"},
	Home:        {BG: "Начало", EN: "Home"},
	Speeches:    {BG: "Речи", EN: "Speeches"},
	TribuneYes:  {BG: "От трибуна", EN: "From tribune"},
	TribuneNo:   {BG: "От място", EN: "From seat"},
	Date:        {BG: "Дата", EN: "Date"},
	About:       {BG: "Относно", EN: "About"},
	Search:      {BG: "Въведи име", EN: "Enter a name"},
	NoSpeeches:  {BG: "Няма намерени речи", EN: "No speeches found"},
	LoadFailed:  {BG: "Филтрите не можаха да бъдат заредени", EN: "Could not load filters"},
	FetchFailed: {BG: "Речите не можаха да бъдат заредени", EN: "Could not load speeches"},
	Dates:       {BG: "Дати", EN: "Dates"},

	"hero_subtitle_line_1": {
		BG: "Разглеждай и анализирай речи от Народното събрание,",
		EN: "Explore and analyze speeches from the Bulgarian National Assembly,",
	},
	"hero_subtitle_line_2": {
		BG: "прозрачно, интерактивно и свободно.",
		EN: "transparently, interactively, and freely.",
	},
	"browse_speeches": {BG: "Разгледай речите", EN: "Browse Speeches"},
	"why_heading":     {BG: "Защо Parliametrics?", EN: "Why Parliametrics?"},
	"why_paragraph_1": {
		BG: "Парламентарните дебати оформят законите, отразяват политическите ценности и влияят на общественото мнение...",
		EN: "Parliamentary debates shape laws, reflect political values, and influence public perception. Yet access to these speeches, especially with analysis tools, has remained fragmented or opaque.",
	},
	"why_paragraph_2": {
		BG: "Parliametrics цели да демократизира достъпа до данни за парламентарни речи...",
		EN: "Parliametrics aims to democratize access to Bulgaria's parliamentary speech data and enable exploration through search, filters, and linguistic insights.",
	},
	"what_heading": {BG: "Какво можеш да правиш", EN: "What You Can Do"},
	"search_title": {BG: "Търси речи", EN: "Search Speeches"},
	"search_text": {
		BG: "Намери речи по дата, говорител или контекст, или използвай пълнотекстово и семантично търсене (скоро).",
		EN: "Find speeches by date, speaker, or context, or use advanced full-text and semantic search (coming soon).",
	},
	"filter_title": {BG: "Филтрирай по метаданни", EN: "Filter by Metadata"},
	"filter_text": {
		BG: "Разглеждай речи по партийна принадлежност, трибуна или времеви период.",
		EN: "Explore speeches based on party affiliation, tribune presence, or time period.",
	},
	"linguistic_title": {BG: "Лингвистични показатели", EN: "Linguistic Insights"},
	"linguistic_text": {
		BG: "Виж лексикално богатство, брой думи и други езикови показатели за всяка реч.",
		EN: "See lexical richness, token counts, and other language metrics per speech.",
	},
	"cta_heading":    {BG: "Готов ли си да изследваш политическия дискурс?", EN: "Ready to explore political discourse?"},
	"cta_button":     {BG: "Започни сега", EN: "Start Browsing"},
	"footer_credits": {BG: "Данни от API на Народното събрание", EN: "Speech data from the Bulgarian Parliament API"},
	"footer_github":  {BG: "Виж в GitHub", EN: "View on GitHub"},
}
