// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package migrationuc

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/carrental/pkg/core/finance"
	"github.com/momeni/carrental/pkg/core/model"
	"github.com/momeni/carrental/pkg/core/repo"
	"github.com/momeni/carrental/pkg/core/usecase/audituc"
	"github.com/momeni/carrental/pkg/core/usecase/rentaluc"
	"github.com/shopspring/decimal"
)

// ImportRepos groups the repositories which are filled by an import.
type ImportRepos struct {
	Cars        repo.Cars
	Clients     repo.Clients
	Rentals     repo.Rentals
	Inspections repo.Inspections
	Payments    repo.Payments
	Company     repo.Company
}

// ImportUseCase represents the legacy import use case. It converts a
// Dump into the current tables in one transaction, so a failed import
// leaves no partial data behind.
type ImportUseCase struct {
	pool    repo.Pool
	repos   ImportRepos
	journal *audituc.UseCase
	now     func() time.Time
}

// NewImport instantiates a legacy import use case.
func NewImport(p repo.Pool, rs ImportRepos, j *audituc.UseCase) *ImportUseCase {
	return &ImportUseCase{pool: p, repos: rs, journal: j, now: time.Now}
}

// ImportReport counts the imported records. Warnings describe the
// records which were fixed or skipped during the conversion.
type ImportReport struct {
	Cars        int
	Clients     int
	Rentals     int
	Inspections int
	Payments    int
	Archived    int
	Warnings    []string
}

func (r *ImportReport) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// importer holds the state of one import transaction.
type importer struct {
	*ImportUseCase
	tx     repo.Tx
	now    time.Time
	report *ImportReport

	cars      map[uuid.UUID]bool
	clients   map[uuid.UUID]bool
	rentals   map[uuid.UUID]*model.Rental
	contracts map[string]bool
	byRental  map[uuid.UUID][]LegacyInspection
}

// Import stores the records of d. Live records are imported as they
// are and records which only exist in the archived_* collections are
// imported as archived ones. Inspections are accepted both as the
// documents of the inspections collection and as the etatDepart and
// etatRetour objects of rentals. The paid amount of each rental is
// recomputed as the sum of its imported payments.
func (iuc *ImportUseCase) Import(ctx context.Context, d *Dump) (*ImportReport, error) {
	report := &ImportReport{}
	err := iuc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			im := &importer{
				ImportUseCase: iuc,
				tx:            tx,
				now:           iuc.now().UTC(),
				report:        report,
				cars:          make(map[uuid.UUID]bool),
				clients:       make(map[uuid.UUID]bool),
				rentals:       make(map[uuid.UUID]*model.Rental),
				contracts:     make(map[string]bool),
				byRental:      make(map[uuid.UUID][]LegacyInspection),
			}
			return im.run(ctx, d)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("importing legacy dump: %w", err)
	}
	return report, nil
}

func (im *importer) run(ctx context.Context, d *Dump) error {
	if s := d.Settings.Company; s != nil {
		if err := im.repos.Company.Tx(im.tx).Save(ctx, s); err != nil {
			return fmt.Errorf("company settings: %w", err)
		}
	}
	for i := range d.Cars {
		if err := im.car(ctx, &d.Cars[i], false); err != nil {
			return err
		}
	}
	for i := range d.ArchivedCars {
		if err := im.car(ctx, &d.ArchivedCars[i], true); err != nil {
			return err
		}
	}
	for i := range d.Clients {
		if err := im.client(ctx, &d.Clients[i]); err != nil {
			return err
		}
	}
	for _, in := range d.Inspections {
		id := legacyID(model.EntityRental, in.RentalID)
		im.byRental[id] = append(im.byRental[id], in)
	}
	for i := range d.Rentals {
		if err := im.rental(ctx, &d.Rentals[i], false); err != nil {
			return err
		}
	}
	for i := range d.ArchivedRentals {
		if err := im.rental(ctx, &d.ArchivedRentals[i], true); err != nil {
			return err
		}
	}
	paid := make(map[uuid.UUID]decimal.Decimal)
	seen := make(map[uuid.UUID]bool)
	for i := range d.Payments {
		if err := im.payment(ctx, &d.Payments[i], paid, seen); err != nil {
			return err
		}
	}
	for _, lp := range d.ArchivedPayments {
		if !seen[legacyID(model.EntityPayment, lp.ID)] {
			im.report.warnf(
				"payment %s was deleted from the live collection, skipped",
				lp.ID,
			)
		}
	}
	return im.reconcile(ctx, paid)
}

func (im *importer) car(ctx context.Context, lc *LegacyCar, archived bool) error {
	id := legacyID(model.EntityCar, lc.ID)
	if im.cars[id] {
		return nil
	}
	car := &model.Car{
		ID:               id,
		Brand:            lc.Brand,
		Model:            lc.Model,
		Year:             int(lc.Year),
		Color:            lc.Color,
		Plate:            lc.Plate,
		Chassis:          lc.Chassis,
		Condition:        lc.Condition,
		Availability:     lc.Availability,
		DailyPrice:       lc.DailyPrice.Round(2),
		Odometer:         int64(lc.Odometer),
		Fuel:             lc.Fuel,
		Transmission:     lc.Transmission,
		InsuranceExpiry:  lc.InsuranceExpiry.ptr(),
		InspectionExpiry: lc.InspectionExpiry.ptr(),
		Schedule: model.MaintenanceSchedule{
			NextOilChangeKm:    lc.Schedule.NextOilChangeKm.ptr(),
			NextFuelFilterKm:   lc.Schedule.NextFuelFilterKm.ptr(),
			NextTimingBeltKm:   lc.Schedule.NextTimingBeltKm.ptr(),
			NextBrakePadsKm:    lc.Schedule.NextBrakePadsKm.ptr(),
			NextServiceDate:    lc.Schedule.NextServiceDate.ptr(),
			NextBrakeFluidDate: lc.Schedule.NextBrakeFluidDate.ptr(),
			NextCoolantDate:    lc.Schedule.NextCoolantDate.ptr(),
		},
		Photos:    nonNil(lc.Photos),
		CreatedAt: lc.CreatedAt.Time,
	}
	if car.Condition.Validate() != nil {
		im.report.warnf("car %s: condition %q replaced by %q", lc.ID, car.Condition, model.ConditionGood)
		car.Condition = model.ConditionGood
	}
	if car.Fuel.Validate() != nil {
		im.report.warnf("car %s: fuel type %q replaced by %q", lc.ID, car.Fuel, model.Petrol)
		car.Fuel = model.Petrol
	}
	if car.Transmission.Validate() != nil {
		im.report.warnf("car %s: transmission %q replaced by %q", lc.ID, car.Transmission, model.Manual)
		car.Transmission = model.Manual
	}
	if car.Availability.Validate() != nil {
		im.report.warnf("car %s: availability %q replaced by %q", lc.ID, car.Availability, model.Available)
		car.Availability = model.Available
	}
	for _, h := range lc.History {
		car.History = append(car.History, model.MaintenanceRecord{
			Date:        firstTime(h.Date, h.StartedAt),
			Odometer:    int64(h.Odometer),
			Description: h.Description,
			Cost:        h.Cost.Round(2),
		})
	}
	switch {
	case lc.Current != nil && car.Availability == model.InMaintenance:
		car.Current = &model.CurrentMaintenance{
			StartedAt:   firstTime(lc.Current.StartedAt, lc.Current.Date),
			Description: lc.Current.Description,
			Garage:      lc.Current.Garage,
		}
		if car.Current.StartedAt.IsZero() {
			car.Current.StartedAt = im.now
		}
	case car.Availability == model.InMaintenance:
		im.report.warnf("car %s: in maintenance without a maintenance record", lc.ID)
		car.Current = &model.CurrentMaintenance{
			StartedAt:   im.now,
			Description: "maintenance",
		}
	}
	if archived {
		car.ArchivedAt = archivedAt(lc.ArchivedAt, im.now)
		im.report.Archived++
	}
	if err := im.repos.Cars.Tx(im.tx).Create(ctx, car); err != nil {
		return fmt.Errorf("car %s: %w", lc.ID, err)
	}
	im.cars[id] = true
	im.report.Cars++
	return im.journal.Record(ctx, im.tx, model.EntityCar, id, model.ActionImport, lc.ID)
}

func (im *importer) client(ctx context.Context, lc *LegacyClient) error {
	id := legacyID(model.EntityClient, lc.ID)
	if im.clients[id] {
		return nil
	}
	p := lc.person()
	cl := &model.Client{
		ID:            id,
		LastName:      p.LastName,
		FirstName:     p.FirstName,
		NationalID:    p.NationalID,
		LicenseNumber: p.LicenseNumber,
		LicenseIssued: p.LicenseIssued,
		Phone:         p.Phone,
		Email:         strings.TrimSpace(lc.Email),
		Address:       p.Address,
		Photos:        nonNil(lc.Photos),
		CreatedAt:     lc.CreatedAt.Time,
	}
	if err := im.repos.Clients.Tx(im.tx).Create(ctx, cl); err != nil {
		return fmt.Errorf("client %s: %w", lc.ID, err)
	}
	im.clients[id] = true
	im.report.Clients++
	return im.journal.Record(ctx, im.tx, model.EntityClient, id, model.ActionImport, lc.ID)
}

func (im *importer) rental(ctx context.Context, lr *LegacyRental, archived bool) error {
	id := legacyID(model.EntityRental, lr.ID)
	if _, ok := im.rentals[id]; ok {
		return nil
	}
	number := strings.TrimSpace(lr.ContractNumber)
	if _, err := model.ParseContractNumber(number); err != nil || im.contracts[number] {
		month := firstTime(lr.CreatedAt, lr.Terms.StartDate)
		if month.IsZero() {
			month = im.now
		}
		existing := make([]string, 0, len(im.contracts))
		for cn := range im.contracts {
			existing = append(existing, cn)
		}
		renumbered := rentaluc.NextContractNumber("C", month, existing)
		im.report.warnf("rental %s: contract number %q replaced by %q", lr.ID, number, renumbered)
		number = renumbered
	}
	t := &lr.Terms
	r := &model.Rental{
		ID:             id,
		ContractNumber: number,
		ClientID:       legacyID(model.EntityClient, lr.ClientID),
		Renter:         lr.Renter.person(),
		CarID:          legacyID(model.EntityCar, lr.CarID),
		Vehicle: model.VehicleSnapshot{
			Brand: lr.Vehicle.Brand,
			Model: lr.Vehicle.Model,
			Plate: lr.Vehicle.Plate,
			Color: lr.Vehicle.Color,
			Fuel:  lr.Vehicle.Fuel,
		},
		Terms: model.RentalTerms{
			StartDate:      t.StartDate.Time,
			EndDate:        t.EndDate.Time,
			PickupLocation: t.PickupLocation,
			ReturnLocation: t.ReturnLocation,
			DailyPrice:     t.DailyPrice.Round(2),
			Days:           int(t.Days),
			Deposit:        t.Deposit.Round(2),
			Total: finance.TotalWithFallback(
				t.StartDate.ptr(), t.EndDate.ptr(),
				t.DailyPrice.Decimal, t.Total.Decimal, int(t.Days),
			).Round(2),
			Paid: t.Paid.Round(2),
		},
		Status:      lr.Status,
		DepartureKm: int64(lr.DepartureKm),
		ReturnKm:    lr.ReturnKm.ptr(),
		ReturnedAt:  lr.ReturnedAt.ptr(),
		CreatedAt:   lr.CreatedAt.Time,
	}
	if lr.SecondDriver != nil {
		sd := lr.SecondDriver.person()
		r.SecondDriver = &sd
	}
	if sd, ed := t.StartDate.ptr(), t.EndDate.ptr(); sd != nil && ed != nil {
		r.Terms.Days = finance.DayCount(*sd, *ed)
	} else if r.Terms.Days < 1 {
		r.Terms.Days = 1
	}
	if r.Status.Validate() != nil {
		im.report.warnf("rental %s: status %q replaced by %q", lr.ID, r.Status, model.Ongoing)
		r.Status = model.Ongoing
		if r.ReturnKm != nil {
			r.Status = model.Returned
		}
	}
	if archived {
		r.ArchivedAt = archivedAt(lr.ArchivedAt, im.now)
		im.report.Archived++
	}
	if err := im.inspections(ctx, lr, r); err != nil {
		return err
	}
	if err := im.repos.Rentals.Tx(im.tx).Create(ctx, r); err != nil {
		return fmt.Errorf("rental %s: %w", lr.ID, err)
	}
	im.rentals[id] = r
	im.contracts[number] = true
	im.report.Rentals++
	return im.journal.Record(ctx, im.tx, model.EntityRental, id, model.ActionImport, lr.ID)
}

// inspections writes the departure (and return) inspections of r.
// Documents of the inspections collection take precedence over the
// embedded objects. A missing departure inspection is synthesized
// from the departure odometer.
func (im *importer) inspections(ctx context.Context, lr *LegacyRental, r *model.Rental) error {
	var dep, ret *LegacyInspection
	docs := im.byRental[r.ID]
	for i := range docs {
		switch docs[i].Kind {
		case model.DepartureInspection:
			dep = &docs[i]
		case model.ReturnInspection:
			ret = &docs[i]
		}
	}
	if dep == nil {
		dep = lr.Departure
	}
	if ret == nil {
		ret = lr.Return
	}
	if dep == nil {
		im.report.warnf("rental %s: no departure inspection, synthesized", lr.ID)
		dep = &LegacyInspection{}
	}
	in := im.inspection(dep, model.DepartureInspection, r, r.DepartureKm, r.Terms.StartDate)
	if err := im.repos.Inspections.Tx(im.tx).Create(ctx, in); err != nil {
		return fmt.Errorf("departure inspection of rental %s: %w", lr.ID, err)
	}
	r.DepartureInspectionID = in.ID
	im.report.Inspections++
	if ret == nil {
		if r.Status == model.Returned {
			im.report.warnf("rental %s: returned without a return inspection", lr.ID)
		}
		return nil
	}
	km := r.DepartureKm
	if r.ReturnKm != nil {
		km = *r.ReturnKm
	}
	date := r.Terms.EndDate
	if r.ReturnedAt != nil {
		date = *r.ReturnedAt
	}
	in = im.inspection(ret, model.ReturnInspection, r, km, date)
	if err := im.repos.Inspections.Tx(im.tx).Create(ctx, in); err != nil {
		return fmt.Errorf("return inspection of rental %s: %w", lr.ID, err)
	}
	r.ReturnInspectionID = &in.ID
	im.report.Inspections++
	return nil
}

func (im *importer) inspection(
	li *LegacyInspection, kind model.InspectionKind, r *model.Rental,
	km int64, date time.Time,
) *model.Inspection {
	in := &model.Inspection{
		RentalID:    r.ID,
		CarID:       r.CarID,
		Kind:        kind,
		Date:        li.Date.Time,
		Odometer:    km,
		FuelLevel:   li.FuelLevel,
		Accessories: li.Accessories,
		Notes:       li.Notes,
		Photos:      nonNil(li.Photos),
		Damages:     []model.Damage{},
	}
	if li.ID != "" {
		in.ID = legacyID("inspections", li.ID)
	}
	if li.Odometer != nil {
		in.Odometer = int64(*li.Odometer)
	}
	if in.Date.IsZero() {
		in.Date = date
	}
	for _, ld := range append(li.Damages, li.Dommages...) {
		d := model.Damage{Part: ld.Part, Kind: ld.Kind, X: ld.X, Y: ld.Y}
		if d.Kind.Validate() != nil {
			im.report.warnf("rental %s: damage type %q replaced by %q", r.ID, d.Kind, model.Scratch)
			d.Kind = model.Scratch
		}
		in.Damages = append(in.Damages, d)
	}
	return in
}

func (im *importer) payment(
	ctx context.Context, lp *LegacyPayment,
	paid map[uuid.UUID]decimal.Decimal, seen map[uuid.UUID]bool,
) error {
	id := legacyID(model.EntityPayment, lp.ID)
	if seen[id] {
		return nil
	}
	seen[id] = true
	r, ok := im.rentals[legacyID(model.EntityRental, lp.RentalID)]
	if !ok {
		im.report.warnf("payment %s: unknown rental %q, skipped", lp.ID, lp.RentalID)
		return nil
	}
	p := &model.Payment{
		ID:             id,
		RentalID:       r.ID,
		ContractNumber: r.ContractNumber,
		ClientName:     lp.ClientName,
		Amount:         lp.Amount.Round(2),
		Date:           lp.Date.Time,
		Method:         lp.Method,
		Status:         lp.Status,
		Notes:          lp.Notes,
	}
	if p.ClientName == "" {
		p.ClientName = r.Renter.FullName()
	}
	if p.Date.IsZero() {
		p.Date = r.Terms.StartDate
	}
	if p.Method.Validate() != nil {
		im.report.warnf("payment %s: method %q replaced by %q", lp.ID, p.Method, model.Cash)
		p.Method = model.Cash
	}
	if p.Status.Validate() != nil {
		p.Status = model.PaymentValid
	}
	if !p.Amount.IsPositive() {
		im.report.warnf("payment %s: amount %s is not positive, skipped", lp.ID, p.Amount)
		return nil
	}
	if err := im.repos.Payments.Tx(im.tx).Create(ctx, p); err != nil {
		return fmt.Errorf("payment %s: %w", lp.ID, err)
	}
	paid[r.ID] = paid[r.ID].Add(p.Amount)
	im.report.Payments++
	return im.journal.Record(ctx, im.tx, model.EntityPayment, id, model.ActionImport, lp.ID)
}

// reconcile stores the sum of the imported payments of each rental as
// its paid amount.
func (im *importer) reconcile(ctx context.Context, paid map[uuid.UUID]decimal.Decimal) error {
	q := im.repos.Rentals.Tx(im.tx)
	for id, r := range im.rentals {
		sum := paid[id]
		if sum.Equal(r.Terms.Paid) {
			continue
		}
		im.report.warnf(
			"rental %s: paid amount %s replaced by the payments sum %s",
			r.ContractNumber, r.Terms.Paid.StringFixed(2), sum.StringFixed(2),
		)
		if sum.GreaterThan(r.Terms.Total) {
			im.report.warnf("rental %s: payments exceed the total", r.ContractNumber)
		}
		r.Terms.Paid = sum
		if err := q.Save(ctx, r); err != nil {
			return fmt.Errorf("rental %s: %w", r.ContractNumber, err)
		}
	}
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func firstTime(ts ...LegacyTime) time.Time {
	for _, t := range ts {
		if !t.IsZero() {
			return t.Time
		}
	}
	return time.Time{}
}

func archivedAt(lt LegacyTime, now time.Time) *time.Time {
	if p := lt.ptr(); p != nil {
		return p
	}
	return &now
}
