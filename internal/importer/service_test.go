package importer_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/finassist/internal/importer"
	"github.com/MrJamesThe3rd/finassist/internal/transaction"
)

const statement = `date;description;amount;category
2026-10-01;Salary ACME;5000;Income
2026-10-02;UBER *TRIP;-23,40;
2026-10-03;Corner shop;-12;
`

func TestService_Import(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	cat := importer.NewMockCategorizer(ctrl)

	gomock.InOrder(
		cat.EXPECT().Learn(gomock.Any(), userID, "Salary ACME", transaction.CategoryIncome).Return(nil),
		cat.EXPECT().Suggest(gomock.Any(), userID, "UBER *TRIP").Return(transaction.CategoryTransport, true, nil),
		cat.EXPECT().Suggest(gomock.Any(), userID, "Corner shop").Return(transaction.Category(""), false, nil),
	)

	rows, err := importer.NewService(cat).Import(context.Background(), userID, strings.NewReader(statement))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, transaction.CategoryIncome, rows[0].Category)
	assert.Equal(t, transaction.CategoryTransport, rows[1].Category)
	assert.Equal(t, transaction.CategoryOther, rows[2].Category)
}

func TestService_Import_LearnFailureIsNotFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cat := importer.NewMockCategorizer(ctrl)
	cat.EXPECT().Learn(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("db error"))

	rows, err := importer.NewService(cat).Import(context.Background(), uuid.New(),
		strings.NewReader("date;description;amount;category\n2026-10-01;Salary;5000;Income\n"))
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestService_Import_SuggestError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cat := importer.NewMockCategorizer(ctrl)
	cat.EXPECT().Learn(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	cat.EXPECT().Suggest(gomock.Any(), gomock.Any(), "UBER *TRIP").Return(transaction.Category(""), false, errors.New("db error"))

	_, err := importer.NewService(cat).Import(context.Background(), uuid.New(), strings.NewReader(statement))
	assert.Error(t, err)
}

func TestService_Import_ParseError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	_, err := importer.NewService(importer.NewMockCategorizer(ctrl)).
		Import(context.Background(), uuid.New(), strings.NewReader("nothing;here\n"))
	assert.ErrorIs(t, err, importer.ErrNoHeader)
}
