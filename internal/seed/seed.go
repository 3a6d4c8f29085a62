package seed

import (
	"fmt"
	"math/rand"
	"time"

	"fleet-service/internal/model"
	"fleet-service/pkg/config"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const sampleVehicleCount = 100

var plateLetters = []rune("ABEKMHOPCTYX")

// catalog maps vehicle types to representative brand/model pairs.
var catalog = map[model.VehicleType][][2]string{
	model.VehicleCar:        {{"Toyota", "Camry"}, {"Hyundai", "Solaris"}, {"Kia", "Rio"}, {"Skoda", "Octavia"}},
	model.VehicleSUV:        {{"Toyota", "Land Cruiser"}, {"Nissan", "X-Trail"}, {"Renault", "Duster"}},
	model.VehiclePickup:     {{"Toyota", "Hilux"}, {"Mitsubishi", "L200"}, {"Ford", "Ranger"}},
	model.VehicleMinivan:    {{"Volkswagen", "Caravelle"}, {"Hyundai", "Staria"}},
	model.VehicleMotorcycle: {{"Honda", "CB500"}, {"Yamaha", "MT-07"}},
	model.VehicleTruck:      {{"Volvo", "FH16"}, {"Scania", "R450"}, {"MAN", "TGX"}, {"KAMAZ", "5490"}},
	model.VehicleBus:        {{"Mercedes-Benz", "Sprinter"}, {"PAZ", "3205"}, {"LiAZ", "5292"}},
	model.VehicleVan:        {{"Ford", "Transit"}, {"GAZ", "Gazelle Next"}},
	model.VehicleSpecial:    {{"ZIL", "130"}, {"URAL", "4320"}},
	model.VehicleTrailer:    {{"Schmitz", "Cargobull"}, {"Krone", "Profi Liner"}},
	model.VehicleExcavator:  {{"Caterpillar", "320"}, {"Hitachi", "ZX200"}},
	model.VehicleBulldozer:  {{"Caterpillar", "D6"}, {"Komatsu", "D65"}},
	model.VehicleCrane:      {{"Liebherr", "LTM 1060"}, {"Ivanovets", "KS-45717"}},
}

var gasolineFuels = []model.FuelType{model.Fuel92Octane, model.Fuel95Octane, model.Fuel98Octane}

var maintenanceJobs = []string{
	"Oil and filter change",
	"Brake pad replacement",
	"Tire rotation",
	"Scheduled inspection",
	"Coolant flush",
	"Battery replacement",
	"Transmission service",
}

// Run ensures the admin account exists and, when enabled, fills an
// empty database with generated sample data. Safe to call on every
// startup.
func Run(db *gorm.DB, cfg *config.Config, log *zap.Logger) error {
	if err := ensureAdmin(db, cfg, log); err != nil {
		return err
	}
	if !cfg.Seed.SampleData {
		return nil
	}

	var count int64
	if err := db.Model(&model.Vehicle{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Info("Sample data seeding skipped, vehicles already present", zap.Int64("vehicles", count))
		return nil
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return db.Transaction(func(tx *gorm.DB) error {
		for i := 0; i < sampleVehicleCount; i++ {
			vehicle, err := generateVehicle(tx, rng, i)
			if err != nil {
				return err
			}
			if err := generateFuelRecords(tx, rng, vehicle); err != nil {
				return err
			}
			if err := generateMaintenanceRecords(tx, rng, vehicle); err != nil {
				return err
			}
		}
		log.Info("Sample data seeded", zap.Int("vehicles", sampleVehicleCount))
		return nil
	})
}

func ensureAdmin(db *gorm.DB, cfg *config.Config, log *zap.Logger) error {
	var existing model.User
	err := db.Where("username = ?", "admin").First(&existing).Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Seed.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := model.User{
		Username: "admin",
		Password: string(hash),
		Role:     model.RoleAdmin,
		Email:    "admin@fleet.local",
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Info("Admin account created", zap.String("username", admin.Username))
	return nil
}

func generateVehicle(tx *gorm.DB, rng *rand.Rand, n int) (*model.Vehicle, error) {
	types := model.VehicleTypes
	vt := types[rng.Intn(len(types))]
	entry := catalog[vt][rng.Intn(len(catalog[vt]))]

	status := model.StatusActive
	switch {
	case n%17 == 0:
		status = model.StatusInactive
	case n%11 == 0:
		status = model.StatusMaintenance
	}

	vehicle := model.Vehicle{
		Name:    entry[0] + " " + entry[1],
		Type:    vt,
		Plate:   generatePlate(rng, n),
		Brand:   entry[0],
		VIN:     generateVIN(rng),
		Status:  status,
		Year:    2005 + rng.Intn(20),
		Mileage: float64(10000 + rng.Intn(290000)),
	}
	if err := tx.Create(&vehicle).Error; err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func generateFuelRecords(tx *gorm.DB, rng *rand.Rand, vehicle *model.Vehicle) error {
	fuelType := func() model.FuelType {
		if vehicle.Type.RequiresDiesel() {
			return model.FuelDiesel
		}
		return gasolineFuels[rng.Intn(len(gasolineFuels))]
	}

	count := 5 + rng.Intn(11)
	mileage := vehicle.Mileage - float64(count*500)
	for i := 0; i < count; i++ {
		quantity := 20 + rng.Float64()*60
		record := model.FuelRecord{
			VehicleID: vehicle.ID,
			Date:      randomDate(rng, 180),
			Quantity:  quantity,
			Cost:      quantity * (50 + rng.Float64()*15),
			Mileage:   mileage + float64(i*500),
			FuelType:  fuelType(),
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
	}
	return nil
}

func generateMaintenanceRecords(tx *gorm.DB, rng *rand.Rand, vehicle *model.Vehicle) error {
	count := 3 + rng.Intn(6)
	for i := 0; i < count; i++ {
		next := vehicle.Mileage + float64(5000+rng.Intn(10000))
		record := model.MaintenanceRecord{
			VehicleID:          vehicle.ID,
			Date:               randomDate(rng, 365),
			Description:        maintenanceJobs[rng.Intn(len(maintenanceJobs))],
			Mileage:            vehicle.Mileage - float64(rng.Intn(20000)),
			Cost:               float64(1000 + rng.Intn(30000)),
			NextServiceMileage: &next,
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
	}
	return nil
}

// generatePlate embeds the vehicle ordinal so plates never collide
// within one seeding run.
func generatePlate(rng *rand.Rand, n int) string {
	letter := func() rune { return plateLetters[rng.Intn(len(plateLetters))] }
	return fmt.Sprintf("%c%03d%c%c%02d",
		letter(), n+100, letter(), letter(), 10+rng.Intn(90))
}

func generateVIN(rng *rand.Rand) string {
	const alphabet = "ABCDEFGHJKLMNPRSTUVWXYZ0123456789"
	vin := make([]byte, 17)
	for i := range vin {
		vin[i] = alphabet[rng.Intn(len(alphabet))]
	}
	return string(vin)
}

func randomDate(rng *rand.Rand, maxDaysBack int) time.Time {
	day := time.Now().AddDate(0, 0, -rng.Intn(maxDaysBack))
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
}
