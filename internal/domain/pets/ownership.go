package pets

import "context"

// OwnerOf expone el ownerUserID de una mascota.
// Lo usan los handlers de records/wellness para el check de ownership
// sin acoplarse al modelo completo.
func (s *Service) OwnerOf(ctx context.Context, petID string) (string, error) {
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return "", err
	}
	return p.OwnerUserID, nil
}
