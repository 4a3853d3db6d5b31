package sqlinline

const QInsertPayment = `--sql 6039b4b0-0bd0-4726-9df9-8449e6116781
insert into payments(
  id,
  order_id,
  provider,
  provider_ref,
  status,
  amount_cents,
  currency,
  payload,
  created_at,
  updated_at
) values (
  $1::uuid,
  $2::uuid,
  $3::text,
  $4::text,
  'PENDING',
  $5::bigint,
  $6::text,
  $7::jsonb,
  now(),
  now()
);
`

const QSelectPaymentByProviderRef = `--sql 2eb78a00-a3e4-4979-b3e4-cc430922f9ca
select id, order_id, provider, provider_ref, status, amount_cents, currency, payload, created_at, updated_at
from payments
where provider_ref = $1::text
limit 1;
`

const QUpdatePaymentStatus = `--sql 399e6a8c-42a1-463f-8aa9-c1da24e0f2cd
update payments
set status = $2::text, payload = $3::jsonb, updated_at = now()
where id = $1::uuid;
`
