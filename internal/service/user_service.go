package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mertkaya-dev/backoffice/internal/domain"
	"github.com/mertkaya-dev/backoffice/internal/fallback"
	"github.com/mertkaya-dev/backoffice/internal/mapper"
	"github.com/mertkaya-dev/backoffice/internal/metrics"
	"github.com/mertkaya-dev/backoffice/internal/storefront"
)

// Fallback collection names.
const (
	usersCollection    = "users"
	overlaysCollection = "user_overlays"
	ordersCollection   = "orders"
)

// UserService manages dashboard users. The upstream API is the source of
// truth when reachable; the fallback store answers reads and absorbs writes
// when it is not. The overlay collection keeps role, department and the
// boolean flags, which the upstream cannot represent, across both paths.
type UserService struct {
	api      UserAPI
	users    *fallback.Collection[domain.User]
	overlays *fallback.Collection[domain.UserOverlay]
	metrics  *metrics.Metrics
	logger   zerolog.Logger
}

// NewUserService creates a UserService over the given upstream client and
// fallback store.
func NewUserService(api UserAPI, store fallback.Store, m *metrics.Metrics, logger zerolog.Logger) *UserService {
	return &UserService{
		api:      api,
		users:    fallback.NewCollection(store, usersCollection, func(u domain.User) int64 { return u.ID }),
		overlays: fallback.NewCollection(store, overlaysCollection, func(o domain.UserOverlay) int64 { return o.UserID }),
		metrics:  m,
		logger:   logger.With().Str("service", "user").Logger(),
	}
}

// GetAll returns all users. On any upstream failure it returns the fallback
// collection contents as previously persisted, in their stored order; the
// two sources are never merged.
func (s *UserService) GetAll(ctx context.Context) ([]domain.User, error) {
	apiUsers, err := s.api.ListUsers(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("upstream list failed, serving fallback users")
		s.metrics.ObserveFallback(usersCollection, "get_all")
		return s.users.All(ctx)
	}

	overlayByID, err := s.overlayIndex(ctx)
	if err != nil {
		return nil, err
	}

	users := make([]domain.User, 0, len(apiUsers))
	for _, au := range apiUsers {
		u := mapper.UserFromAPI(au)
		if o, ok := overlayByID[u.ID]; ok {
			u.ApplyOverlay(o)
		}
		users = append(users, u)
	}
	return users, nil
}

// GetByID returns one user from the upstream. There is no fallback read for
// single users; an unreachable upstream surfaces as a wrapped
// storefront.ErrUnavailable so callers can tell it apart from a missing user.
func (s *UserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	au, err := s.api.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, storefront.ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		s.logger.Warn().Err(err).Int64("user_id", id).Msg("failed to get user")
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}

	u := mapper.UserFromAPI(*au)
	if o, found, err := s.overlayFor(ctx, u.ID); err != nil {
		return nil, err
	} else if found {
		u.ApplyOverlay(o)
	}
	return &u, nil
}

// Create creates a user. On upstream success the created user is mirrored
// into the fallback collection (best effort) so a later failure-mode GetAll
// still sees it. On upstream failure the user is created locally with a
// synthesized ID: max over the fallback set plus one, or 1 when empty.
// The returned user carries no marker of which path served it.
func (s *UserService) Create(ctx context.Context, user domain.User) (*domain.User, error) {
	if user.Role == "" {
		user.Role = domain.DefaultRole
	}
	if user.Department == "" {
		user.Department = domain.DefaultDepartment
	}

	created, err := s.api.CreateUser(ctx, mapper.UserToAPI(user))
	if err != nil {
		s.logger.Warn().Err(err).Msg("upstream create failed, creating user in fallback store")
		return s.createLocal(ctx, user)
	}

	result := mapper.UserFromAPI(*created)
	result.ApplyOverlay(domain.UserOverlay{
		UserID:         result.ID,
		Role:           user.Role,
		Department:     user.Department,
		Admin:          user.Admin,
		Representative: user.Representative,
	})

	if err := s.overlays.Upsert(ctx, result.ID, result.Overlay()); err != nil {
		s.logger.Error().Err(err).Int64("user_id", result.ID).Msg("failed to persist user overlay")
	}
	if err := s.users.Append(ctx, result); err != nil {
		s.logger.Error().Err(err).Int64("user_id", result.ID).Msg("failed to mirror created user into fallback store")
	}

	s.logger.Info().Int64("user_id", result.ID).Str("username", result.Username).Msg("user created")
	return &result, nil
}

// createLocal persists a user straight into the fallback store.
func (s *UserService) createLocal(ctx context.Context, user domain.User) (*domain.User, error) {
	existing, err := s.users.All(ctx)
	if err != nil {
		return nil, err
	}

	user.ID = nextID(existing, func(u domain.User) int64 { return u.ID })
	user.UserNumber = domain.FormatUserNumber(user.ID)

	if err := s.users.Append(ctx, user); err != nil {
		return nil, err
	}
	if err := s.overlays.Upsert(ctx, user.ID, user.Overlay()); err != nil {
		s.logger.Error().Err(err).Int64("user_id", user.ID).Msg("failed to persist user overlay")
	}

	s.metrics.ObserveFallback(usersCollection, "create")
	s.logger.Info().Int64("user_id", user.ID).Msg("user created in fallback store")
	return &user, nil
}

// UserPatch carries the fields of a partial user update. Nil fields are
// left unchanged.
type UserPatch struct {
	Username  *string
	Email     *string
	FirstName *string
	LastName  *string
	Phone     *string
	Address   *domain.Address

	Role           *string
	Department     *string
	Admin          *bool
	Representative *bool
}

// Apply merges the set fields onto the user.
func (p UserPatch) Apply(u *domain.User) {
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.Address != nil {
		addr := *p.Address
		u.Address = &addr
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.Department != nil {
		u.Department = *p.Department
	}
	if p.Admin != nil {
		u.Admin = *p.Admin
	}
	if p.Representative != nil {
		u.Representative = *p.Representative
	}
}

// Update applies a partial update. The identity fields go to the upstream
// via PUT; the locally-only fields are persisted in the overlay collection
// regardless of upstream reachability, so they survive successful remote
// round-trips. On upstream failure the patch is merged onto the fallback
// record instead; a user present in neither place is reported not found.
func (s *UserService) Update(ctx context.Context, id int64, patch UserPatch) (*domain.User, error) {
	outbound := domain.User{ID: id}
	patch.Apply(&outbound)

	updated, err := s.api.UpdateUser(ctx, id, mapper.UserToAPI(outbound))
	if err != nil {
		s.logger.Warn().Err(err).Int64("user_id", id).Msg("upstream update failed, updating fallback record")
		return s.updateLocal(ctx, id, patch)
	}

	result := mapper.UserFromAPI(*updated)
	result.ID = id
	result.UserNumber = domain.FormatUserNumber(id)

	if o, found, err := s.overlayFor(ctx, id); err != nil {
		return nil, err
	} else if found {
		result.ApplyOverlay(o)
	}
	patch.applyOverlayFields(&result)

	if err := s.overlays.Upsert(ctx, id, result.Overlay()); err != nil {
		s.logger.Error().Err(err).Int64("user_id", id).Msg("failed to persist user overlay")
	}

	s.logger.Info().Int64("user_id", id).Msg("user updated")
	return &result, nil
}

// applyOverlayFields merges only the locally-stored fields of the patch.
func (p UserPatch) applyOverlayFields(u *domain.User) {
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.Department != nil {
		u.Department = *p.Department
	}
	if p.Admin != nil {
		u.Admin = *p.Admin
	}
	if p.Representative != nil {
		u.Representative = *p.Representative
	}
}

// updateLocal merges the patch onto the fallback record.
func (s *UserService) updateLocal(ctx context.Context, id int64, patch UserPatch) (*domain.User, error) {
	existing, err := s.users.All(ctx)
	if err != nil {
		return nil, err
	}

	for i := range existing {
		if existing[i].ID != id {
			continue
		}
		merged := existing[i]
		patch.Apply(&merged)

		if err := s.users.ReplaceByID(ctx, id, merged); err != nil {
			return nil, err
		}
		if err := s.overlays.Upsert(ctx, id, merged.Overlay()); err != nil {
			s.logger.Error().Err(err).Int64("user_id", id).Msg("failed to persist user overlay")
		}

		s.metrics.ObserveFallback(usersCollection, "update")
		s.logger.Info().Int64("user_id", id).Msg("user updated in fallback store")
		return &merged, nil
	}

	return nil, domain.ErrUserNotFound
}

// Delete removes a user. Upstream success answers true; on upstream failure
// the user is removed from the fallback collection and the result reports
// whether a removal actually occurred there. A user absent from both places
// yields false, never an error.
func (s *UserService) Delete(ctx context.Context, id int64) (bool, error) {
	if err := s.api.DeleteUser(ctx, id); err != nil {
		s.logger.Warn().Err(err).Int64("user_id", id).Msg("upstream delete failed, removing from fallback store")
		removed, rmErr := s.users.RemoveByID(ctx, id)
		if rmErr != nil {
			return false, rmErr
		}
		if removed {
			s.metrics.ObserveFallback(usersCollection, "delete")
			s.removeOverlay(ctx, id)
		}
		return removed, nil
	}

	// Keep the mirror and overlay coherent with the upstream.
	if _, err := s.users.RemoveByID(ctx, id); err != nil {
		s.logger.Error().Err(err).Int64("user_id", id).Msg("failed to remove mirrored user")
	}
	s.removeOverlay(ctx, id)

	s.logger.Info().Int64("user_id", id).Msg("user deleted")
	return true, nil
}

func (s *UserService) removeOverlay(ctx context.Context, id int64) {
	if _, err := s.overlays.RemoveByID(ctx, id); err != nil {
		s.logger.Error().Err(err).Int64("user_id", id).Msg("failed to remove user overlay")
	}
}

// overlayIndex loads all overlays keyed by user ID.
func (s *UserService) overlayIndex(ctx context.Context) (map[int64]domain.UserOverlay, error) {
	overlays, err := s.overlays.All(ctx)
	if err != nil {
		return nil, err
	}
	index := make(map[int64]domain.UserOverlay, len(overlays))
	for _, o := range overlays {
		index[o.UserID] = o
	}
	return index, nil
}

// overlayFor loads the overlay for one user, reporting whether one exists.
func (s *UserService) overlayFor(ctx context.Context, id int64) (domain.UserOverlay, bool, error) {
	index, err := s.overlayIndex(ctx)
	if err != nil {
		return domain.UserOverlay{}, false, err
	}
	o, ok := index[id]
	return o, ok, nil
}

// nextID returns max(existing IDs)+1, or 1 for an empty set.
func nextID[T any](records []T, idOf func(T) int64) int64 {
	var max int64
	for _, r := range records {
		if id := idOf(r); id > max {
			max = id
		}
	}
	return max + 1
}
