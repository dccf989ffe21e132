package interaction

import (
	"errors"
	"sync"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"

	"github.com/recetario/recetario/model"
	"github.com/recetario/recetario/repository"
)

// ErrUnauthenticated 未認証ユーザーがインタラクションを要求した
var ErrUnauthenticated = errors.New("not authenticated")

// Status レシピ1件に対するインタラクション表示状態
type Status struct {
	LikeCount int  `json:"likeCount"`
	SaveCount int  `json:"saveCount"`
	Liked     bool `json:"liked"`
	Saved     bool `json:"saved"`
}

// Coordinator いいね/保存トグルのコーディネーター
//
// セッションごとの表示状態(Session)を管理し、トグルを
// 楽観更新 → ストアへの権威書き込み → 権威値での読み直し の順で行います。
type Coordinator struct {
	repo   repository.Repository
	logger *zap.Logger
}

// NewCoordinator インタラクションコーディネーターを生成します
func NewCoordinator(repo repository.Repository, logger *zap.Logger) *Coordinator {
	return &Coordinator{
		repo:   repo,
		logger: logger.Named("interaction"),
	}
}

// Open 指定したユーザー・レシピのセッションを開き、権威値で初期化します
//
// userがnilの場合、ErrUnauthenticatedを返します。
// レシピが存在しない場合、repository.ErrNotFoundを返します。
func (c *Coordinator) Open(user *model.User, recipeID uuid.UUID) (*Session, error) {
	if user == nil {
		return nil, ErrUnauthenticated
	}
	s := &Session{
		coordinator: c,
		userID:      user.ID,
		recipeID:    recipeID,
	}
	if err := s.refresh(); err != nil {
		return nil, err
	}
	return s, nil
}

// Session ユーザー・レシピの組に対するインタラクションセッション
type Session struct {
	coordinator *Coordinator
	userID      uuid.UUID
	recipeID    uuid.UUID

	mu   sync.Mutex
	view Status
}

// View 現在の表示状態を返します
func (s *Session) View() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// Toggle 指定した種別のインタラクションをトグルします
//
// 表示状態を楽観更新した後、ストアへ権威書き込みを行い、成功時は
// 権威値の読み直しで表示状態を上書きします。書き込みに失敗した場合、
// 表示状態をトグル前の値に巻き戻してエラーを返します。
func (s *Session) Toggle(kind model.InteractionKind) (Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.view
	s.view = applyOptimisticToggle(s.view, kind)

	repo := s.coordinator.repo
	var err error
	if isMember(previous, kind) {
		err = repo.RemoveRecipeInteraction(s.userID, s.recipeID, kind)
	} else {
		err = repo.AddRecipeInteraction(s.userID, s.recipeID, kind)
	}
	if err != nil {
		s.view = previous
		return s.view, err
	}

	if err := s.refreshLocked(); err != nil {
		// 書き込みは成功している。読み直しの失敗は楽観値のまま返す
		s.coordinator.logger.Warn("failed to refresh interaction status",
			zap.Stringer("recipeId", s.recipeID), zap.Error(err))
	}
	return s.view, nil
}

// Refresh 表示状態を権威値で読み直します
func (s *Session) Refresh() (Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.refreshLocked(); err != nil {
		return s.view, err
	}
	return s.view, nil
}

func (s *Session) refresh() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshLocked()
}

func (s *Session) refreshLocked() error {
	repo := s.coordinator.repo
	recipe, err := repo.RefreshRecipeCounters(s.recipeID)
	if err != nil {
		return err
	}
	interactions, err := repo.GetUserRecipeInteractions(s.userID, s.recipeID)
	if err != nil {
		return err
	}

	view := Status{
		LikeCount: recipe.LikeCount,
		SaveCount: recipe.SaveCount,
	}
	for _, v := range interactions {
		switch v.Kind {
		case model.InteractionKindLike:
			view.Liked = true
		case model.InteractionKindSave:
			view.Saved = true
		}
	}
	s.view = view
	return nil
}

// applyOptimisticToggle 表示状態に対してトグルを楽観適用する。カウントは0未満にしない
func applyOptimisticToggle(v Status, kind model.InteractionKind) Status {
	switch kind {
	case model.InteractionKindLike:
		if v.Liked {
			v.Liked = false
			if v.LikeCount > 0 {
				v.LikeCount--
			}
		} else {
			v.Liked = true
			v.LikeCount++
		}
	case model.InteractionKindSave:
		if v.Saved {
			v.Saved = false
			if v.SaveCount > 0 {
				v.SaveCount--
			}
		} else {
			v.Saved = true
			v.SaveCount++
		}
	}
	return v
}

func isMember(v Status, kind model.InteractionKind) bool {
	switch kind {
	case model.InteractionKindLike:
		return v.Liked
	case model.InteractionKindSave:
		return v.Saved
	default:
		return false
	}
}
