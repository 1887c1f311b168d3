package service

import (
	"time"

	"membercare_backend/internal/members/repository"
)

// completeness scores how much of the optional profile is filled in,
// as a 0-100 percentage. First and last name are required at creation
// and do not count. The score is stored on the row so the search
// engine can filter and sort on it without recomputing.
type profileFacts struct {
	phoneNumber   *string
	email         *string
	sex           *string
	maritalStatus *string
	dateOfBirth   *time.Time
	memberSince   *time.Time
	city          *string
	region        *string
	country       *string
	tags          []string
}

func completeness(f profileFacts) int {
	filled := 0
	total := 10

	for _, present := range []bool{
		f.phoneNumber != nil,
		f.email != nil,
		f.sex != nil,
		f.maritalStatus != nil,
		f.dateOfBirth != nil,
		f.memberSince != nil,
		f.city != nil,
		f.region != nil,
		f.country != nil,
		len(f.tags) > 0,
	} {
		if present {
			filled++
		}
	}
	return filled * 100 / total
}

func completenessFromCreate(p repository.CreateMemberParams) int {
	return completeness(profileFacts{
		phoneNumber:   p.PhoneNumber,
		email:         p.Email,
		sex:           p.Sex,
		maritalStatus: p.MaritalStatus,
		dateOfBirth:   p.DateOfBirth,
		memberSince:   p.MemberSince,
		city:          p.City,
		region:        p.Region,
		country:       p.Country,
		tags:          p.Tags,
	})
}

func completenessFromUpdate(p repository.UpdateMemberParams) int {
	return completeness(profileFacts{
		phoneNumber:   p.PhoneNumber,
		email:         p.Email,
		sex:           p.Sex,
		maritalStatus: p.MaritalStatus,
		dateOfBirth:   p.DateOfBirth,
		memberSince:   p.MemberSince,
		city:          p.City,
		region:        p.Region,
		country:       p.Country,
		tags:          p.Tags,
	})
}
