package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/biblioteca/pkg/errors"
)

// fakeUserRepo 内存版用户仓储，唯一性检查模拟数据库UNIQUE索引行为
type fakeUserRepo struct {
	users  map[uint]*User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*User), nextID: 1}
}

func (r *fakeUserRepo) Create(ctx context.Context, u *User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return apperrors.ErrEmailDuplicate
		}
		if existing.Username == u.Username {
			return ErrUsernameDuplicate
		}
	}
	u.ID = r.nextID
	r.nextID++
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uint) (*User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) Update(ctx context.Context, u *User) error {
	r.users[u.ID] = u
	return nil
}

// fakePlaceRepo 只实现注册校验用到的两个查询，图书馆1和书店2视为存在
type fakePlaceRepo struct {
	PlaceRepository
}

func (r *fakePlaceRepo) FindLibraryByID(ctx context.Context, id uint) (*Library, error) {
	if id == 1 {
		return &Library{ID: 1, Name: "Biblioteca Centrale", CityID: 1}, nil
	}
	return nil, apperrors.New(apperrors.ErrCodeNotFound, "图书馆不存在")
}

func (r *fakePlaceRepo) FindStoreByID(ctx context.Context, id uint) (*Store, error) {
	if id == 2 {
		return &Store{ID: 2, Name: "Libreria del Corso", CityID: 1}, nil
	}
	return nil, apperrors.ErrStoreNotFound
}

func validParams() RegisterParams {
	return RegisterParams{
		Email:    "mario.rossi@example.it",
		Username: "mario",
		Password: "lettore123",
		Role:     RoleMember,
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("读者注册成功且密码加密存储", func(t *testing.T) {
		svc := NewService(newFakeUserRepo(), &fakePlaceRepo{})

		u, err := svc.Register(ctx, validParams())

		require.NoError(t, err)
		assert.NotZero(t, u.ID)
		assert.Equal(t, RoleMember, u.Role)
		assert.Zero(t, u.AffiliationID)
		assert.NotEqual(t, "lettore123", u.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("lettore123")))
	})

	t.Run("角色缺省为读者", func(t *testing.T) {
		svc := NewService(newFakeUserRepo(), &fakePlaceRepo{})

		params := validParams()
		params.Role = ""
		u, err := svc.Register(ctx, params)

		require.NoError(t, err)
		assert.Equal(t, RoleMember, u.Role)
	})

	t.Run("邮箱格式校验", func(t *testing.T) {
		svc := NewService(newFakeUserRepo(), &fakePlaceRepo{})

		for _, email := range []string{"", "mario", "mario@", "@example.it", "mario@example"} {
			params := validParams()
			params.Email = email
			_, err := svc.Register(ctx, params)
			assert.Error(t, err, "邮箱 %q 应被拒绝", email)
		}
	})

	t.Run("密码强度校验", func(t *testing.T) {
		svc := NewService(newFakeUserRepo(), &fakePlaceRepo{})

		for _, password := range []string{"short1", "soloparole", "12345678", "troppolungapassword12345"} {
			params := validParams()
			params.Password = password
			_, err := svc.Register(ctx, params)
			assert.ErrorIs(t, err, apperrors.ErrWeakPassword, "密码 %q 应被拒绝", password)
		}
	})

	t.Run("角色不合法", func(t *testing.T) {
		svc := NewService(newFakeUserRepo(), &fakePlaceRepo{})

		params := validParams()
		params.Role = "admin"
		_, err := svc.Register(ctx, params)
		assert.ErrorIs(t, err, ErrInvalidRole)
	})

	t.Run("馆员必须指定存在的图书馆", func(t *testing.T) {
		svc := NewService(newFakeUserRepo(), &fakePlaceRepo{})

		params := validParams()
		params.Role = RoleLibrarian
		_, err := svc.Register(ctx, params)
		assert.ErrorIs(t, err, ErrAffiliationRequired)

		params.AffiliationID = 99
		_, err = svc.Register(ctx, params)
		assert.Error(t, err)

		params.AffiliationID = 1
		u, err := svc.Register(ctx, params)
		require.NoError(t, err)
		assert.Equal(t, uint(1), u.AffiliationID)
	})

	t.Run("书店人员必须指定存在的书店", func(t *testing.T) {
		svc := NewService(newFakeUserRepo(), &fakePlaceRepo{})

		params := validParams()
		params.Role = RoleBookseller
		params.AffiliationID = 99
		_, err := svc.Register(ctx, params)
		assert.ErrorIs(t, err, apperrors.ErrStoreNotFound)

		params.AffiliationID = 2
		u, err := svc.Register(ctx, params)
		require.NoError(t, err)
		assert.Equal(t, uint(2), u.AffiliationID)
	})

	t.Run("邮箱和用户名不能重复", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := NewService(repo, &fakePlaceRepo{})

		_, err := svc.Register(ctx, validParams())
		require.NoError(t, err)

		_, err = svc.Register(ctx, validParams())
		assert.ErrorIs(t, err, apperrors.ErrEmailDuplicate)

		params := validParams()
		params.Email = "altro@example.it"
		_, err = svc.Register(ctx, params)
		assert.ErrorIs(t, err, ErrUsernameDuplicate)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc := NewService(repo, &fakePlaceRepo{})

	_, err := svc.Register(ctx, validParams())
	require.NoError(t, err)

	t.Run("邮箱登录", func(t *testing.T) {
		u, err := svc.Login(ctx, "mario.rossi@example.it", "lettore123")

		require.NoError(t, err)
		assert.Equal(t, "mario", u.Username)
	})

	t.Run("用户名登录", func(t *testing.T) {
		u, err := svc.Login(ctx, "mario", "lettore123")

		require.NoError(t, err)
		assert.Equal(t, "mario.rossi@example.it", u.Email)
	})

	t.Run("密码错误", func(t *testing.T) {
		_, err := svc.Login(ctx, "mario", "sbagliata1")
		assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)
	})

	t.Run("用户不存在", func(t *testing.T) {
		_, err := svc.Login(ctx, "nessuno", "lettore123")
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})
}
