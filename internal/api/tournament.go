package api

import (
	"time"

	"poker-log/internal/model"
	"poker-log/internal/service"
)

// TournamentRequest 建立與更新共用；欄位保留原始文字，由 workflow 驗證與轉型
// swagger:model api.TournamentRequest
type TournamentRequest struct {
	Name  FormValue `form:"name" json:"name" swaggertype:"string" example:"Weekend Deepstack"`
	Date  FormValue `form:"date" json:"date" swaggertype:"string" example:"2024-01-01T10:00"`
	BuyIn FormValue `form:"buyIn" json:"buyIn" swaggertype:"string" example:"5000"`
}

func (r TournamentRequest) Input() service.TournamentInput {
	return service.TournamentInput{Name: string(r.Name), Date: string(r.Date), BuyIn: string(r.BuyIn)}
}

// swagger:model api.TournamentResponse
type TournamentResponse struct {
	ID        string    `json:"id" example:"01HZX3K5Q8Y6J2V7M9N4P0R1ST"`
	Name      string    `json:"name" example:"Weekend Deepstack"`
	Date      time.Time `json:"date" example:"2024-01-01T10:00:00Z"`
	BuyIn     int64     `json:"buyIn" example:"5000"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewTournamentResponse(t *model.Tournament) TournamentResponse {
	return TournamentResponse{
		ID:        t.ID,
		Name:      t.Name,
		Date:      t.Date,
		BuyIn:     t.BuyIn,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func NewTournamentList(list []model.Tournament) []TournamentResponse {
	out := make([]TournamentResponse, 0, len(list))
	for i := range list {
		out = append(out, NewTournamentResponse(&list[i]))
	}
	return out
}
