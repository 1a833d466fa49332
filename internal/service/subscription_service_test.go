package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tube24/tube24_go_server/internal/repository"
	"github.com/tube24/tube24_go_server/internal/testutil"
)

func setupSubscriptionService(t *testing.T) (*SubscriptionService, *gorm.DB, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	service := NewSubscriptionService(
		repository.NewSubscriptionRepository(db),
		repository.NewUserRepository(db),
		testConfig(),
	)

	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}

	return service, db, cleanup
}

func TestSubscriptionService_ListPlans(t *testing.T) {
	service, _, cleanup := setupSubscriptionService(t)
	defer cleanup()

	plans := service.ListPlans()
	require.Len(t, plans, 3)
	assert.Equal(t, "free", plans[0].ID)
	assert.Equal(t, 2, plans[0].MaxChannels)
	assert.Equal(t, "pro", plans[1].ID)
	assert.Equal(t, 9.99, plans[1].Price)
}

func TestSubscriptionService_Subscribe(t *testing.T) {
	service, db, cleanup := setupSubscriptionService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	info, err := service.Subscribe(user.ID, "pro")
	require.NoError(t, err)
	assert.Equal(t, "pro", info.Plan)
	assert.Equal(t, "active", info.Status)
	assert.NotEmpty(t, info.ExpiresAt)

	// 用户套餐立即切换
	updated, err := repository.NewUserRepository(db).GetByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "pro", updated.Plan)
	require.NotNil(t, updated.SubscriptionEndsAt)
}

func TestSubscriptionService_Subscribe_InvalidPlan(t *testing.T) {
	service, db, cleanup := setupSubscriptionService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	_, err := service.Subscribe(user.ID, "platinum")
	assert.ErrorIs(t, err, ErrInvalidPlan)

	// free 不是可订阅的付费套餐
	_, err = service.Subscribe(user.ID, "free")
	assert.ErrorIs(t, err, ErrInvalidPlan)
}

func TestSubscriptionService_Subscribe_AlreadyOnPlan(t *testing.T) {
	service, db, cleanup := setupSubscriptionService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	_, err := service.Subscribe(user.ID, "pro")
	require.NoError(t, err)

	_, err = service.Subscribe(user.ID, "pro")
	assert.ErrorIs(t, err, ErrAlreadyOnPlan)
}

func TestSubscriptionService_Subscribe_Upgrade(t *testing.T) {
	service, db, cleanup := setupSubscriptionService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	_, err := service.Subscribe(user.ID, "pro")
	require.NoError(t, err)

	info, err := service.Subscribe(user.ID, "business")
	require.NoError(t, err)
	assert.Equal(t, "business", info.Plan)
}

func TestSubscriptionService_CancelAndResume(t *testing.T) {
	service, db, cleanup := setupSubscriptionService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	_, err := service.Subscribe(user.ID, "pro")
	require.NoError(t, err)

	// 取消后已付周期继续生效
	info, err := service.Cancel(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "pro", info.Plan)
	assert.Equal(t, "canceled", info.Status)

	// 恢复
	info, err = service.Resume(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "active", info.Status)
}

func TestSubscriptionService_Cancel_NoSubscription(t *testing.T) {
	service, db, cleanup := setupSubscriptionService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	_, err := service.Cancel(user.ID)
	assert.ErrorIs(t, err, ErrNoActiveSubscription)
}

func TestSubscriptionService_Resume_NotCanceled(t *testing.T) {
	service, db, cleanup := setupSubscriptionService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	_, err := service.Resume(user.ID)
	assert.ErrorIs(t, err, ErrNotCanceled)
}

func TestSubscriptionService_Sweep(t *testing.T) {
	service, db, cleanup := setupSubscriptionService(t)
	defer cleanup()

	now := time.Now()
	userRepo := repository.NewUserRepository(db)

	// 到期的付费用户
	expired := testutil.TestUser(t, db,
		testutil.WithPlan("pro"),
		testutil.WithSubscriptionEndsAt(now.Add(-time.Hour)))

	// 未到期的付费用户
	active := testutil.TestUser(t, db,
		testutil.WithPlan("business"),
		testutil.WithSubscriptionEndsAt(now.Add(240*time.Hour)))

	affected, err := service.Sweep(now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	got, err := userRepo.GetByID(expired.ID)
	require.NoError(t, err)
	assert.Equal(t, "free", got.Plan)
	assert.Equal(t, "expired", got.SubscriptionStatus)

	got, err = userRepo.GetByID(active.ID)
	require.NoError(t, err)
	assert.Equal(t, "business", got.Plan)
}
