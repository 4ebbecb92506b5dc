package game

type Service interface {
	GetAllGames() ([]*Game, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetAllGames() ([]*Game, error) {
	games, err := s.repo.GetAllGames()
	if err != nil {
		return nil, err
	}
	if games == nil {
		games = []*Game{}
	}
	return games, nil
}
