package patient

import (
	"context"
	"fmt"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) load(ctx context.Context) (*Collection, error) {
	c, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load patients: %w", err)
	}
	return c, nil
}

func (s *Service) save(ctx context.Context, c *Collection) error {
	if err := s.repo.Save(ctx, c); err != nil {
		return fmt.Errorf("save patients: %w", err)
	}
	return nil
}

func (s *Service) CreatePatient(ctx context.Context, p Patient) error {
	c, err := s.load(ctx)
	if err != nil {
		return err
	}
	if c.Has(p.ID) {
		return ErrPatientExists
	}
	c.Put(p.ID, p.Record)
	return s.save(ctx, c)
}

func (s *Service) GetPatient(ctx context.Context, id string) (Record, error) {
	c, err := s.load(ctx)
	if err != nil {
		return Record{}, err
	}
	rec, ok := c.Get(id)
	if !ok {
		return Record{}, ErrPatientNotFound
	}
	return rec, nil
}

func (s *Service) ListPatients(ctx context.Context) (*Collection, error) {
	return s.load(ctx)
}

// SortPatients validates the parameters before touching storage.
func (s *Service) SortPatients(ctx context.Context, sortBy, order string) ([]Record, error) {
	field, err := ParseSortField(sortBy)
	if err != nil {
		return nil, err
	}
	dir, err := ParseSortOrder(order)
	if err != nil {
		return nil, err
	}
	c, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return SortRecords(c.Records(), field, dir), nil
}

func (s *Service) UpdatePatient(ctx context.Context, id string, upd PatientUpdate) (Patient, error) {
	c, err := s.load(ctx)
	if err != nil {
		return Patient{}, err
	}
	current, ok := c.Get(id)
	if !ok {
		return Patient{}, ErrPatientNotFound
	}
	p, err := upd.Apply(id, current)
	if err != nil {
		return Patient{}, err
	}
	if upd.IsEmpty() {
		return p, nil
	}
	c.Put(id, p.Record)
	if err := s.save(ctx, c); err != nil {
		return Patient{}, err
	}
	return p, nil
}

func (s *Service) DeletePatient(ctx context.Context, id string) error {
	c, err := s.load(ctx)
	if err != nil {
		return err
	}
	if !c.Delete(id) {
		return ErrPatientNotFound
	}
	return s.save(ctx, c)
}

// ImportPatients validates every record of src and, only if all are valid,
// replaces the stored collection with it.
func (s *Service) ImportPatients(ctx context.Context, src *Collection) (int, error) {
	var errs ValidationErrors
	for _, id := range src.IDs() {
		rec, _ := src.Get(id)
		if _, err := NewPatient(rec.Input(id)); err != nil {
			verrs, ok := err.(ValidationErrors)
			if !ok {
				return 0, err
			}
			for _, fe := range verrs {
				fe.Field = id + "." + fe.Field
				errs = append(errs, fe)
			}
		}
	}
	if len(errs) > 0 {
		return 0, errs
	}
	if err := s.save(ctx, src); err != nil {
		return 0, err
	}
	return src.Len(), nil
}
