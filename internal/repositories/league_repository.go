package repositories

import (
	"errors"

	"dynastytrade/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrLeagueConnectionNotFound = errors.New("league connection not found")

type LeagueRepository struct {
	DB *gorm.DB
}

// UpsertConnection saves a league connection for the user. Reconnecting the
// same league overwrites the name and team fields instead of duplicating the
// (user_id, league_id) pair.
func (r *LeagueRepository) UpsertConnection(conn *models.LeagueConnection) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "league_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"league_name", "selected_team_id", "selected_team_name", "updated_at",
		}),
	}).Create(conn).Error
}

// UpdateSelectedTeam records the user's own team within a connected league.
func (r *LeagueRepository) UpdateSelectedTeam(userID uint, leagueID, teamID, teamName string) error {
	result := r.DB.Model(&models.LeagueConnection{}).
		Where("user_id = ? AND league_id = ?", userID, leagueID).
		Updates(map[string]any{"selected_team_id": teamID, "selected_team_name": teamName})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLeagueConnectionNotFound
	}
	return nil
}

func (r *LeagueRepository) GetConnection(userID uint, leagueID string) (*models.LeagueConnection, error) {
	var conn models.LeagueConnection
	err := r.DB.First(&conn, "user_id = ? AND league_id = ?", userID, leagueID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrLeagueConnectionNotFound
	}
	return &conn, err
}

func (r *LeagueRepository) ListConnections(userID uint) ([]models.LeagueConnection, error) {
	var conns []models.LeagueConnection
	err := r.DB.Where("user_id = ?", userID).Order("updated_at DESC").Find(&conns).Error
	return conns, err
}
