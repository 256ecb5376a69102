package finder

import (
	"strconv"

	"github.com/Dayoung0-0/zero-to-agile-frontend/internal/models"
)

// Display strings.
const (
	FallbackErrorMessage = "컨텍 요청 목록을 불러오는데 실패했습니다."

	LoadingText = "컨택 목록을 불러오는 중..."

	HeaderEyebrow  = "나에게 제안한"
	HeaderTitle    = "임대인 컨택"
	HeaderSubtitle = "임대인의 매물 제안을 확인하고 관리하세요"

	EmptyIcon     = "💼"
	EmptyTitle    = "아직 컨택한 임대인이 없습니다"
	EmptySubtitle = "임대인이 매물을 제안하면 여기에서 확인할 수 있어요"

	AcceptedLabel = "수락함"
	PendingLabel  = "대기중"

	TitleFallback   = "매물 정보"
	AddressFallback = "주소 정보 없음"

	DepositLabel     = "보증금"
	MonthlyRentLabel = "월세"
	PriceUnit        = "만원"

	requestBadgePrefix = "의뢰서 #"
	detailPathPrefix   = "/finder/contacts/"
)

// ViewKind is the visual state classification of the page.
type ViewKind int

const (
	ViewLoading ViewKind = iota
	ViewFailed
	ViewEmpty
	ViewList
)

func (k ViewKind) String() string {
	switch k {
	case ViewLoading:
		return "loading"
	case ViewFailed:
		return "failed"
	case ViewEmpty:
		return "empty"
	case ViewList:
		return "list"
	}
	return "unknown"
}

// Classify maps a state triple to exactly one visual state.
func Classify(s PageState) ViewKind {
	switch {
	case s.Loading:
		return ViewLoading
	case s.Error != "":
		return ViewFailed
	case len(s.Data) == 0:
		return ViewEmpty
	default:
		return ViewList
	}
}

// StatusBadge is the finder's response badge on a card.
type StatusBadge struct {
	Label string
	Tone  string // "accepted" or "pending", used as a CSS modifier
}

// Card is the derived display data for one proposal.
type Card struct {
	SendMessageID   int64
	Href            string
	RequestBadge    string
	Status          *StatusBadge
	Title           string
	Address         string
	Deposit         string
	MonthlyRent     string
	ShowMonthlyRent bool
	Message         string
	CreatedAt       string
}

// View is everything the template needs; it holds no behavior.
type View struct {
	Kind         ViewKind
	ShowHeader   bool
	ErrorMessage string
	ShowEmpty    bool
	Cards        []Card
}

// IsLoading reports whether only the loading indicator is shown.
func (v View) IsLoading() bool {
	return v.Kind == ViewLoading
}

// DetailPath is the navigation target for a proposal.
func DetailPath(sendMessageID int64) string {
	return detailPathPrefix + strconv.FormatInt(sendMessageID, 10)
}

// BuildView derives the view from a state snapshot. It has no side effects.
func BuildView(s PageState, f *Formatter) View {
	kind := Classify(s)
	v := View{Kind: kind}

	switch kind {
	case ViewLoading:
		// indicator only
	case ViewFailed:
		v.ShowHeader = true
		v.ErrorMessage = s.Error
	case ViewEmpty:
		v.ShowHeader = true
		v.ShowEmpty = true
	case ViewList:
		v.ShowHeader = true
		v.Cards = make([]Card, 0, len(s.Data))
		for i := range s.Data {
			v.Cards = append(v.Cards, BuildCard(&s.Data[i], f))
		}
	}
	return v
}

// BuildCard derives one card. Missing joined fields fall back to fixed text or zero.
func BuildCard(d *models.SendMessageDetail, f *Formatter) Card {
	card := Card{
		SendMessageID: d.SendMessageID,
		Href:          DetailPath(d.SendMessageID),
		RequestBadge:  requestBadgePrefix + strconv.FormatInt(d.FinderRequestID, 10),
		Status:        statusBadge(d.AcceptType),
		Title:         stringOr(d.HouseTitle, TitleFallback),
		Address:       stringOr(d.HouseAddress, AddressFallback),
		Deposit:       f.Number(d.HouseDeposit.Or(0)) + PriceUnit,
		Message:       d.Message,
		CreatedAt:     f.DateTime(d.CreatedAt.Time),
	}
	if d.HouseMonthlyRent.Valid && d.HouseMonthlyRent.Value > 0 {
		card.ShowMonthlyRent = true
		card.MonthlyRent = f.Number(d.HouseMonthlyRent.Value) + PriceUnit
	}
	return card
}

func statusBadge(a models.AcceptType) *StatusBadge {
	switch a {
	case models.AcceptTypeAccepted:
		return &StatusBadge{Label: AcceptedLabel, Tone: "accepted"}
	case models.AcceptTypePending:
		return &StatusBadge{Label: PendingLabel, Tone: "pending"}
	}
	return nil
}

func stringOr(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}
