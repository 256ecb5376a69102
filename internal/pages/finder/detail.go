package finder

import (
	"github.com/Dayoung0-0/zero-to-agile-frontend/internal/models"
)

const (
	DetailNotFoundMessage = "요청하신 컨택 정보를 찾을 수 없습니다."
	DetailErrorMessage    = "컨택 정보를 불러오는데 실패했습니다."

	notProvided = "정보 없음"
	activeYes   = "게시중"
	activeNo    = "게시 종료"
)

// DetailField is one labelled row of the detail page.
type DetailField struct {
	Label string
	Value string
}

// DetailView is the read-only display of a single proposal.
type DetailView struct {
	Card   Card
	Fields []DetailField
}

// BuildDetailView derives the detail display, reusing the card for the summary.
func BuildDetailView(d *models.SendMessageDetail, f *Formatter) DetailView {
	active := notProvided
	if d.IsActive != nil {
		active = activeNo
		if *d.IsActive {
			active = activeYes
		}
	}

	return DetailView{
		Card: BuildCard(d, f),
		Fields: []DetailField{
			{Label: "임대인", Value: stringOr(d.OwnerName, notProvided)},
			{Label: "연락처", Value: stringOr(d.OwnerPhone, notProvided)},
			{Label: "매물 유형", Value: stringOr(d.HouseType, notProvided)},
			{Label: "거래 유형", Value: stringOr(d.PriceType, notProvided)},
			{Label: "게시 상태", Value: active},
			{Label: "입주 가능", Value: openRange(d.OpenFrom, d.OpenTo)},
			{Label: "수정일", Value: f.DateTime(d.UpdatedAt.Time)},
		},
	}
}

func openRange(from, to *string) string {
	if (from == nil || *from == "") && (to == nil || *to == "") {
		return notProvided
	}
	return stringOr(from, "") + " ~ " + stringOr(to, "")
}
