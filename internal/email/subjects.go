package email

const (
	subjectChurchWelcome    = "Welcome to MemberCare"
	subjectMemberWelcomeFmt = "Welcome to %s"
)
