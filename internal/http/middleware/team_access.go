package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ameen0saad/TO-DO-List/domain"
)

// TeamAccess resolves the :teamId route parameter and verifies the caller
// belongs to the team. Outsiders get the same not-found response as for a
// team that does not exist. Must run after Protect.
func TeamAccess(teamSvc domain.TeamService) gin.HandlerFunc {
	return func(c *gin.Context) {
		teamID, err := strconv.ParseUint(c.Param("teamId"), 10, 32)
		if err != nil {
			abortErr(c, domain.Validation("invalid team ID"))
			return
		}

		user := CurrentUser(c)
		if user == nil {
			abortErr(c, domain.Unauthenticated("you are not logged in, please log in to get access"))
			return
		}

		team, err := teamSvc.Access(c.Request.Context(), uint(teamID), user.ID)
		if err != nil {
			abortErr(c, err)
			return
		}

		c.Set(TeamKey, team)
		c.Next()
	}
}

// CurrentTeam returns the team resolved by TeamAccess.
func CurrentTeam(c *gin.Context) *domain.Team {
	v, ok := c.Get(TeamKey)
	if !ok {
		return nil
	}
	team, _ := v.(*domain.Team)
	return team
}
