package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/gomart/gomart/internal/domain/model"
	"github.com/gomart/gomart/internal/events"
	"github.com/gomart/gomart/internal/observability/logger"
	"github.com/gomart/gomart/internal/query"
	"github.com/gomart/gomart/internal/response"
	"github.com/gomart/gomart/internal/security/password"
	"github.com/gomart/gomart/internal/security/token"
	"github.com/gomart/gomart/internal/store"
	"github.com/gomart/gomart/internal/store/gateway"
	"github.com/gomart/gomart/internal/util"
	"github.com/gomart/gomart/internal/validation"
)

// UserService maneja cuentas: registro, login y el CRUD estándar.
type UserService struct {
	gw      *gateway.Gateway[model.User]
	emitter events.Emitter
	tokens  *token.Issuer
	pw      password.Params
	name    string
	log     *zap.Logger
}

func NewUserService(deps Deps) *UserService {
	return &UserService{
		gw:      gateway.New[model.User](deps.Store.Collection(model.CollectionUser)),
		emitter: deps.Emitter,
		tokens:  deps.Tokens,
		pw:      deps.Password,
		name:    "UserService",
		log:     logger.Named("service.user"),
	}
}

// CreateUser registra un usuario nuevo: valida, hashea el password,
// fuerza rol shopper y persiste. El payload nunca incluye el hash.
func (s *UserService) CreateUser(ctx context.Context, body store.Document) response.Envelope {
	const op = "createUser"

	if err := validation.CreateUser(body); err != nil {
		return response.Fail(err.Error(), 400)
	}

	email, err := validation.ValidateEmail(body["email"].(string))
	if err != nil {
		return response.Fail(err.Error(), 400)
	}

	// Email único
	existing, err := s.gw.ReadRecords(ctx, store.Conditions{"email": email}, "", "", true, 0, 0)
	if err != nil {
		return failWith(s.name, op, err)
	}
	if existing.Count != nil && *existing.Count > 0 {
		return response.Fail("email already registered", 400)
	}

	hash, err := password.Hash(s.pw, body["password"].(string))
	if err != nil {
		return failWith(s.name, op, err)
	}

	user := model.User{
		FirstName:  store.AsString(body["firstName"]),
		LastName:   store.AsString(body["lastName"]),
		UserName:   store.AsString(body["userName"]),
		Password:   hash,
		Email:      email,
		Role:       model.RoleShopper,
		IsVerified: false,
	}

	created, err := s.gw.CreateRecord(ctx, user)
	if err != nil {
		return failWith(s.name, op, err)
	}
	s.log.Info("user created", logger.RecordID(created.ID), logger.Email(util.MaskEmail(created.Email)))

	created.Password = "" // el hash no sale del service
	return response.FromSingleRead(created)
}

// Login verifica credenciales y devuelve el usuario con un token firmado.
func (s *UserService) Login(ctx context.Context, body store.Document) response.Envelope {
	const op = "userLogin"

	if err := validation.UserLogin(body); err != nil {
		return response.Fail(err.Error(), 400)
	}
	email := store.AsString(body["email"])
	plain := store.AsString(body["password"])

	res, err := s.gw.ReadRecords(ctx, store.Conditions{"email": email, store.FieldIsActive: true}, "", "", false, 0, 1)
	if err != nil {
		return failWith(s.name, op, err)
	}
	if len(res.Records) == 0 {
		// Mismo mensaje que password incorrecto: no revelar existencia
		return response.Fail("incorrect email or password", 401)
	}
	user := res.Records[0]

	if !password.Verify(plain, user.Password) {
		s.log.Warn("login failed", logger.Email(util.MaskEmail(email)))
		return response.Fail("incorrect email or password", 401)
	}

	signed, err := s.tokens.Issue(map[string]any{
		"id":       user.ID,
		"uid":      user.UID,
		"email":    user.Email,
		"userName": user.UserName,
		"role":     user.Role,
	})
	if err != nil {
		return failWith(s.name, op, err)
	}

	user.Password = ""
	payload := struct {
		model.User
		Token string `json:"token"`
	}{User: user, Token: signed}

	s.log.Info("login ok", logger.UserID(user.ID), logger.Role(user.Role))
	return response.Ok(payload)
}

// ReadUserByID devuelve un usuario activo por id.
func (s *UserService) ReadUserByID(ctx context.Context, id int64) response.Envelope {
	const op = "readUserById"
	if id <= 0 {
		return response.Fail("Invalid ID supplied.", 400)
	}

	conds := idConditions(id)
	conds[store.FieldIsActive] = true
	res, err := s.gw.ReadRecords(ctx, conds, "", "", false, 0, 1)
	if err != nil {
		return failWith(s.name, op, err)
	}
	if len(res.Records) == 0 {
		return response.Fail("Resource not found", 404)
	}
	user := res.Records[0]
	user.Password = ""
	return response.FromSingleRead(user)
}

// ReadUsers lista los usuarios activos no borrados.
func (s *UserService) ReadUsers(ctx context.Context) response.Envelope {
	const op = "readUsers"

	res, err := s.gw.ReadRecords(ctx, activeOnly(), "", "", false, 0, query.Build(nil).Limit)
	if err != nil {
		return failWith(s.name, op, err)
	}
	users := make([]model.User, 0, len(res.Records))
	for _, u := range res.Records {
		u.Password = ""
		users = append(users, u)
	}
	return response.FromMultipleRead(users)
}

// ReadUsersByFilter lista usuarios según los query params crudos.
func (s *UserService) ReadUsersByFilter(ctx context.Context, options map[string]any) response.Envelope {
	const op = "readUsersByFilter"

	result, err := readByFilter(ctx, s.gw, options, nil)
	if err != nil {
		return failWith(s.name, op, err)
	}
	if users, ok := result.([]model.User); ok {
		for i := range users {
			users[i].Password = ""
		}
		result = users
	}
	return response.FromMultipleRead(result)
}

// UpdateUserByID aplica data al usuario id.
func (s *UserService) UpdateUserByID(ctx context.Context, id int64, data store.Document) response.Envelope {
	const op = "updateUserById"
	if id <= 0 {
		return response.Fail("Invalid ID supplied.", 400)
	}
	delete(data, "password") // el password solo cambia por el flujo de credenciales
	delete(data, "role")     // el rol lo administra un admin vía UpdateUsers

	out, err := s.gw.UpdateRecords(ctx, idConditions(id), data)
	if err != nil {
		return failWith(s.name, op, err)
	}
	return response.FromUpdate(out, data, s.emitter, "user.updated")
}

// UpdateUsers aplica data a todos los usuarios que matcheen options.
func (s *UserService) UpdateUsers(ctx context.Context, options map[string]any, data store.Document) response.Envelope {
	const op = "updateUsers"

	if v, ok := data["role"]; ok && !model.ValidRole(store.AsString(v)) {
		return response.Fail(fmt.Sprintf("invalid role %q", store.AsString(v)), 400)
	}
	spec := query.Build(options)
	out, err := s.gw.UpdateRecords(ctx, spec.SeekConditions, data)
	if err != nil {
		return failWith(s.name, op, err)
	}
	return response.FromUpdate(out, data, s.emitter, "user.updated")
}

// DeleteUserByID hace soft-delete del usuario id.
func (s *UserService) DeleteUserByID(ctx context.Context, id int64) response.Envelope {
	const op = "deleteUserById"
	if id <= 0 {
		return response.Fail("Invalid ID supplied.", 400)
	}
	out, err := s.gw.DeleteRecords(ctx, idConditions(id))
	if err != nil {
		return failWith(s.name, op, err)
	}
	return response.FromDelete(out)
}

// DeleteUsers hace soft-delete masivo según options.
func (s *UserService) DeleteUsers(ctx context.Context, options map[string]any) response.Envelope {
	const op = "deleteUsers"

	spec := query.Build(options)
	out, err := s.gw.DeleteRecords(ctx, spec.SeekConditions)
	if err != nil {
		return failWith(s.name, op, err)
	}
	return response.FromDelete(out)
}
