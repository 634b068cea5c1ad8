package database

import (
	"log"

	"pasteleria-backend/internal/config"
	"pasteleria-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	// TranslateError convierte las violaciones de restricción del driver en
	// errores de gorm (ErrDuplicatedKey etc.) que los handlers pueden distinguir.
	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("No se pudo conectar a la base de datos: %v", err)
	}

	err = DB.AutoMigrate(
		&models.Usuario{},
		&models.Cliente{},
		&models.Proveedor{},
		&models.CategoriaInsumo{},
		&models.Insumo{},
		&models.Producto{},
		&models.FichaTecnica{},
		&models.DetalleFichaTecnica{},
		&models.Pedido{},
		&models.DetallePedido{},
		&models.Venta{},
		&models.DetalleVenta{},
		&models.OrdenProduccion{},
		&models.DetalleOrdenProduccion{},
		&models.VentaAsociada{},
		&models.AuditLog{},
	)
	if err != nil {
		log.Fatalf("Error en AutoMigrate: %v", err)
	}

	log.Println("Conexión a la base de datos exitosa. Migración completada.")
}
