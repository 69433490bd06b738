package service

import (
	"context"

	"github.com/hasan-mia/the-x-tribune-server/internal/model"
)

// In-memory repository fakes for service tests.

type fakeUserRepo struct {
	users  map[int]*model.User
	nextID int
	err    error // when set, every call fails with it
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int]*model.User{}, nextID: 1}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	if f.err != nil {
		return f.err
	}
	user.ID = f.nextID
	f.nextID++
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id int) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) List(ctx context.Context) ([]*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*model.User
	for _, u := range f.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, user *model.User) error {
	if f.err != nil {
		return f.err
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) UpdateStatus(ctx context.Context, id int, status string) error {
	if f.err != nil {
		return f.err
	}
	f.users[id].Status = status
	return nil
}

func (f *fakeUserRepo) UpdateRole(ctx context.Context, id, roleID int) error {
	if f.err != nil {
		return f.err
	}
	f.users[id].Role = model.Role{ID: roleID}
	return nil
}

type fakeRoleRepo struct {
	roles map[string]*model.Role
}

func newFakeRoleRepo() *fakeRoleRepo {
	return &fakeRoleRepo{roles: map[string]*model.Role{
		model.RoleNameUser:       {ID: 1, Name: model.RoleNameUser, Score: 1},
		model.RoleNameAdmin:      {ID: 2, Name: model.RoleNameAdmin, Score: 10},
		model.RoleNameSuperAdmin: {ID: 3, Name: model.RoleNameSuperAdmin, Score: 999},
	}}
}

func (f *fakeRoleRepo) FindByName(ctx context.Context, name string) (*model.Role, error) {
	r, ok := f.roles[name]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRoleRepo) List(ctx context.Context) ([]*model.Role, error) {
	var out []*model.Role
	for _, r := range f.roles {
		cp := *r
		out = append(out, &cp)
	}
	return out, nil
}

type fakeMessageRepo struct {
	messages []*model.Message
}

func (f *fakeMessageRepo) Create(ctx context.Context, msg *model.Message) error {
	cp := *msg
	f.messages = append(f.messages, &cp)
	return nil
}

func (f *fakeMessageRepo) ListForUser(ctx context.Context, userID int) ([]*model.Message, error) {
	var out []*model.Message
	for _, m := range f.messages {
		if m.SenderID == userID || m.RecipientID == userID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeMessageRepo) MarkRead(ctx context.Context, id string, recipientID int) error {
	for _, m := range f.messages {
		if m.ID == id && m.RecipientID == recipientID {
			m.Read = true
			return nil
		}
	}
	return nil
}

type fakeInvalidator struct {
	tokens []string
}

func (f *fakeInvalidator) Invalidate(ctx context.Context, token string) error {
	f.tokens = append(f.tokens, token)
	return nil
}
