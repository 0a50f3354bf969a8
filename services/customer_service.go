package services

import (
	"errors"

	"motel-backoffice/models"
	"motel-backoffice/repository"
	"motel-backoffice/utils"
)

var ErrInvalidPhone = errors.New("invalid_phone")

type CustomerService struct {
	store repository.Store
}

func NewCustomerService(store repository.Store) *CustomerService {
	return &CustomerService{store: store}
}

func (s *CustomerService) List() ([]models.Customer, error) {
	return s.store.GetCustomers()
}

func (s *CustomerService) Get(id uint) (*models.Customer, error) {
	return s.store.GetCustomer(id)
}

func (s *CustomerService) FindByPhone(raw string) (*models.Customer, error) {
	phone, ok := utils.NormalizePhone(raw)
	if !ok {
		return nil, ErrInvalidPhone
	}
	return s.store.FindCustomerByPhone(phone)
}

func (s *CustomerService) Create(name, rawPhone, memo string) (*models.Customer, error) {
	phone, ok := utils.NormalizePhone(rawPhone)
	if !ok {
		return nil, ErrInvalidPhone
	}
	c := &models.Customer{Name: name, Phone: phone, Memo: memo}
	if err := s.store.CreateCustomer(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CustomerService) Update(id uint, name, rawPhone, memo *string) (*models.Customer, error) {
	patch := map[string]interface{}{}
	if name != nil {
		patch["name"] = *name
	}
	if rawPhone != nil {
		phone, ok := utils.NormalizePhone(*rawPhone)
		if !ok {
			return nil, ErrInvalidPhone
		}
		patch["phone"] = phone
	}
	if memo != nil {
		patch["memo"] = *memo
	}
	if len(patch) > 0 {
		if err := s.store.UpdateCustomer(id, patch); err != nil {
			return nil, err
		}
	}
	return s.store.GetCustomer(id)
}

// GetOrCreateChatCustomer resolves the customer behind a chat user: first by
// chat user id, then by normalized phone (attaching the chat id to an
// existing record), creating a fresh record on first contact. phone must
// already be normalized.
func (s *CustomerService) GetOrCreateChatCustomer(kakaoUserID, phone string) (*models.Customer, error) {
	if c, err := s.store.FindCustomerByKakaoID(kakaoUserID); err == nil {
		if phone != "" && c.Phone != phone {
			if err := s.store.UpdateCustomer(c.ID, map[string]interface{}{"phone": phone}); err != nil {
				return nil, err
			}
			c.Phone = phone
		}
		return c, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	if phone != "" {
		if c, err := s.store.FindCustomerByPhone(phone); err == nil {
			uid := kakaoUserID
			if err := s.store.UpdateCustomer(c.ID, map[string]interface{}{"kakao_user_id": &uid}); err != nil {
				return nil, err
			}
			c.KakaoUserID = &uid
			return c, nil
		} else if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
	}

	uid := kakaoUserID
	c := &models.Customer{Phone: phone, KakaoUserID: &uid}
	if err := s.store.CreateCustomer(c); err != nil {
		return nil, err
	}
	return c, nil
}
