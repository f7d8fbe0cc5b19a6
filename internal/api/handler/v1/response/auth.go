package response

import "github.com/lacultural/enrollments-api/internal/domain"

type Login struct {
	Token string       `json:"token"`
	Admin domain.Admin `json:"admin"`
}
