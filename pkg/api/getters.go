package api

// Getters follow the generated-message convention: they are safe on a nil
// receiver, so interceptors can read the scope of any request message.

func (x *GetGroupRequest) GetGroupID() string {
	if x != nil {
		return x.GroupID
	}
	return ""
}

func (x *UpdateGroupRequest) GetGroupID() string {
	if x != nil {
		return x.GroupID
	}
	return ""
}

func (x *DeleteGroupRequest) GetGroupID() string {
	if x != nil {
		return x.GroupID
	}
	return ""
}

func (x *CreateInviteRequest) GetGroupID() string {
	if x != nil {
		return x.GroupID
	}
	return ""
}

func (x *ListInvitesRequest) GetGroupID() string {
	if x != nil {
		return x.GroupID
	}
	return ""
}

func (x *ListExpensesRequest) GetGroupID() string {
	if x != nil {
		return x.GroupID
	}
	return ""
}

func (x *CreateExpenseRequest) GetGroupID() string {
	if x != nil {
		return x.GroupID
	}
	return ""
}

func (x *GetBalancesRequest) GetGroupID() string {
	if x != nil {
		return x.GroupID
	}
	return ""
}

func (x *ListActivityRequest) GetGroupID() string {
	if x != nil {
		return x.GroupID
	}
	return ""
}

func (x *DeleteExpenseRequest) GetExpenseID() string {
	if x != nil {
		return x.ExpenseID
	}
	return ""
}

func (x *MarkPaidRequest) GetExpenseID() string {
	if x != nil {
		return x.ExpenseID
	}
	return ""
}

func (x *UpdateProofRequest) GetExpenseID() string {
	if x != nil {
		return x.ExpenseID
	}
	return ""
}

func (x *UploadProofRequest) GetExpenseID() string {
	if x != nil {
		return x.ExpenseID
	}
	return ""
}
